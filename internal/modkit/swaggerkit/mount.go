package swaggerkit

import (
	"net/http"
	"strings"

	phttp "kristech/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the UI under base (for example /api/docs) when enabled
// serverURL is the api prefix written into the document servers block
func Mount(r phttp.Router, base, serverURL string, doc []byte, enabled bool) {
	if !enabled {
		return
	}
	base = strings.TrimSuffix(base, "/")
	r.Get(base, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, base+"/index.html", http.StatusPermanentRedirect)
	})
	r.Get(base+"/doc.json", serveDocJSON(doc, serverURL))
	r.Handle(base+"/*", httpSwagger.Handler(
		httpSwagger.URL(base+"/doc.json"),
		httpSwagger.DocExpansion("list"),
	))
}
