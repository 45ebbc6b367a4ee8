/*
Package types defines the core data structures shared by restdeck packages.

# Request and Response

RequestOptions is the canonical request shape. It is produced by the composer
from the raw text fields of the TUI (or CLI flags) and consumed by the executor.
A nil Body means "no body"; an empty string body is never produced by the
composer.

Response is what the executor returns for every call. Transport failures do
not surface as Go errors; they are folded into the sentinel

	Response{Status: 0, StatusText: "Error", Body: "<error message>"}

which no real HTTP exchange can produce. 4xx and 5xx responses are ordinary
responses.

# Persistence

Environment and EnvironmentsConfig are stored in environments.json,
HistoryEntry in history.json and SavedRequest in saved-requests.json. All
files are written with two-space indentation. Timestamps are serialized as
ISO 8601 strings.

# Example

Environments file:

	{
	  "activeEnvironmentId": 1,
	  "environments": [
	    {
	      "id": 1,
	      "name": "Development",
	      "variables": {
	        "BASE_URL": "http://localhost:3000"
	      }
	    }
	  ]
	}
*/
package types
