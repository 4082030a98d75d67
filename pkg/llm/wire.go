package llm

import "net/http"

// ProviderRequest is a fully built provider wire call: the upstream URL, the
// headers carrying auth, and the JSON body. Adapters only describe the call;
// the dispatcher owns the transport.
type ProviderRequest struct {
	URL    string
	Header http.Header
	Body   []byte
}
