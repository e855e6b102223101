// Command verify-backend probes a running server and checks the access
// policy: public list endpoints must be readable anonymously, and admin
// write endpoints must reject anonymous requests.
package main

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 10 * time.Second}
	failed := false

	fmt.Println("Starting backend verification...")
	fmt.Println()

	for _, path := range []string{"/api/projects", "/api/services", "/api/service-types", "/api/members"} {
		resp, err := client.Get(baseURL + path)
		if err != nil {
			fmt.Printf("FAIL: GET %s: %v\n", path, err)
			failed = true
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("FAIL: GET %s returned %d, want 200\n", path, resp.StatusCode)
			failed = true
		} else {
			fmt.Printf("PASS: GET %s is publicly readable\n", path)
		}
	}

	fmt.Println()

	body := bytes.NewBufferString(`{"title":"should not exist"}`)
	resp, err := client.Post(baseURL+"/admin/api/projects", "application/json", body)
	if err != nil {
		fmt.Printf("FAIL: POST /admin/api/projects: %v\n", err)
		failed = true
	} else {
		resp.Body.Close()
		if resp.StatusCode == http.StatusUnauthorized {
			fmt.Println("PASS: anonymous write was rejected with 401")
		} else {
			fmt.Printf("FAIL: anonymous POST /admin/api/projects returned %d, want 401\n", resp.StatusCode)
			failed = true
		}
	}

	fmt.Println()
	if failed {
		fmt.Println("Verification failed. Paste the output above when reporting.")
		os.Exit(1)
	}
	fmt.Println("All checks passed.")
}
