package utils

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// PathID parses a positive numeric path variable. Anything else cannot name a row,
// so it is reported as NotFound with the given message.
func PathID(r *http.Request, key, notFound string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[key], 10, 63)
	if err != nil || id == 0 {
		return 0, NotFound(notFound)
	}
	return uint(id), nil
}
