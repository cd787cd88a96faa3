/*
Package rallysdk provides the wire types and a small client for the rally
volunteer-management API.

The request and response structs in this package are the JSON bodies the
server reads and writes, so the server and any Go caller share one
definition. Errors from the API always use the envelope

	{"error": "not_found", "error_description": "invite not found"}

which the client decodes into *APIError:

	client := rallysdk.NewSDKClient("https://rally.example.com")

	invite, err := client.GetInvite(ctx, token)
	var apiErr *rallysdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		// expired, used and unknown invites all look the same
	}

Authenticated routes take a session token, normally obtained from the
session cookie after a magic link or OIDC login:

	session := client.NewSession(sessionToken)
	orgs, err := session.ListOrganizations(ctx)
*/
package rallysdk
