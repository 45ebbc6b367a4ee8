/*
Package executor runs HTTP requests for restdeck.

# Overview

Client.Send takes a types.RequestOptions and always returns a types.Response:

  - Only POST, PUT and PATCH forward a body; other methods drop it.
  - A User-Agent header is added unless the caller already set one
    (matched case-insensitively).
  - Response headers with several values are joined with ", ".
  - Bodies served as application/json are re-indented with two spaces when
    they parse; anything else is returned verbatim.
  - Transport failures (DNS, refused connections, timeouts, unreadable
    bodies) produce Status 0, StatusText "Error" and the error message as
    Body. 4xx and 5xx are regular responses.

Time is the elapsed wall time in milliseconds, measured on failures too.

# Example Usage

	client := executor.NewClient(executor.Options{
		Timeout:   30 * time.Second,
		UserAgent: "restdeck/1.0.0",
	})

	body := `{"name": "John"}`
	resp := client.Send(ctx, types.RequestOptions{
		Method:  "POST",
		URL:     "https://api.example.com/users",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    &body,
	})

	if resp.IsTransportError() {
		fmt.Println("failed:", resp.Body)
	}

# Thread Safety

A Client may be shared between goroutines.
*/
package executor
