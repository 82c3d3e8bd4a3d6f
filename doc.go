// Package rendevo provides a Go client SDK for the Rendevo authentication
// and user-management API.
//
// Basic usage:
//
//	client, err := rendevo.New("https://api.rendevo.example")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Sign in; the access token is stored and sent with later calls
//	if _, err := client.Auth.Login(ctx, "user@example.com", "password123"); err != nil {
//	    log.Fatal(err)
//	}
//
//	me, err := client.Users.Me(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Signed in as", me.Email)
//
// Every failure is one of *APIError, *NetworkError, *TimeoutError or
// *ResponseFormatError (see KindOf), or the caller's context error:
//
//	var apiErr *rendevo.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.StatusCode, apiErr.Error())
//	}
//
// Server errors (5xx) and network failures are retried up to 3 attempts.
// Tests should pass WithRetries(RetriesDisabled).
//
// Client.TokenSource exposes the same tokens to golang.org/x/oauth2, and
// Users.WaitForVerification polls until the signed-in user's email is
// confirmed.
package rendevo
