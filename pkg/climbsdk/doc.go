/*
Package climbsdk is the HTTP client for the climbing log API.

# Overview

Every call to the API goes through a Client. The Client asks a TokenSource
(normally a *session.Manager) for the current bearer token on each request
and attaches it when there is one. Public endpoints work without a session.

	bus := eventx.NewBus(logger)
	sessions := session.New(store, bus)
	sessions.Restore(ctx)

	client := climbsdk.NewClient(baseURL, sessions,
		climbsdk.WithStore(store),
		climbsdk.WithNotifier(bus),
	)

	climbs, err := client.ListClimbs(ctx)

# Rejected Tokens

When the API answers 401 to a request that carried a token, the request
fails with ErrAuthorizationRejected and the client ends the session that
token belonged to. A TokenExpirer such as *session.Manager does this itself,
clearing memory and the stored copy together; otherwise the client deletes
the stored token only if it is still the rejected one. Either way a newer
session is never touched, and eventx.EventAuthenticationExpired is published
only when something was actually removed. Repeated rejections of the same
token are handled once.

Any other response that arrives after the session has moved on to another
token (or to none) is discarded with ErrStaleSession so it can never
resurrect old state.

# Errors

Request and every endpoint method only fail with an *APIError, possibly
wrapped with context by the endpoint. Use errors.Is with the sentinels or
AsAPIError to branch:

	if errors.Is(err, climbsdk.ErrAuthorizationRejected) {
		// back to the login screen
	}

# Retries

Only GET requests are retried, and only after a network failure, a timeout
or a 5xx response. A 4xx is a caller problem and is returned immediately.
*/
package climbsdk
