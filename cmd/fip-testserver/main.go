// fip-testserver is a local HTTP echo server used by integration
// scripts that exercise FIP programs against a real network peer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type echoResponse struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Body    string `json:"body,omitempty"`
}

func handleRequest(w http.ResponseWriter, r *http.Request) {
	resp := echoResponse{
		Method: r.Method,
		Path:   r.URL.Path,
		Status: http.StatusOK,
	}

	switch r.URL.Path {
	case "/health":
		resp.Message = "OK"
	case "/echo":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(body) > 0 {
			resp.Body = string(body)
		}
	case "/delay":
		time.Sleep(100 * time.Millisecond)
		resp.Message = "delayed response"
	case "/error":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", uuid.NewString())
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "test error"}`)
		return
	default:
		resp.Message = "not found"
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", uuid.NewString())
	if ua := r.Header.Get("User-Agent"); ua != "" {
		w.Header().Set("X-Echo-User-Agent", ua)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func main() {
	addr := flag.String("addr", "127.0.0.1:3000", "listen address")
	flag.Parse()

	fmt.Printf("Test server listening on http://%s\n", *addr)
	log.Fatal(http.ListenAndServe(*addr, http.HandlerFunc(handleRequest)))
}
