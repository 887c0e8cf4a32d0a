package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// BuildInfo is reported by the debug endpoint.
type BuildInfo struct {
	Version   string
	Sha1ver   string
	BuildTime string
	StoreType string
}

func servePlainText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(s)))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s)) // nolint
}

// Debug echoes the request headers along with build information.
func Debug(info BuildInfo) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		v := mux.Vars(r)
		a := []string{fmt.Sprintf("url: %s %s", r.Method, r.RequestURI), "Headers:"}

		keys := make([]string, 0, len(r.Header))
		for k := range r.Header {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			switch vs := r.Header[k]; len(vs) {
			case 0:
				a = append(a, "  "+k)
			case 1:
				a = append(a, fmt.Sprintf("  %s: %v", k, vs[0]))
			default:
				a = append(a, "  "+k+":")
				for _, v2 := range vs {
					a = append(a, "    "+v2)
				}
			}
		}

		a = append(a,
			"",
			fmt.Sprintf("version: %s", info.Version),
			fmt.Sprintf("commit: %s", info.Sha1ver),
			fmt.Sprintf("built on: %s", info.BuildTime),
			fmt.Sprintf("store: %s", info.StoreType),
			fmt.Sprintf("api version called: %s", v["apiVersion"]),
		)

		servePlainText(rw, strings.Join(a, "\n"))
	})
}
