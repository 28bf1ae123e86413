package models

// Viewer is the identity a request acts as. It is resolved once per
// request and passed explicitly into every service operation instead of
// being read from ambient session state.
type Viewer struct {
	UserID        int64
	Username      string
	Authenticated bool
}

// Anonymous returns the unauthenticated viewer.
func Anonymous() Viewer {
	return Viewer{}
}

// AuthenticatedViewer returns a viewer for a resolved user identity.
func AuthenticatedViewer(userID int64, username string) Viewer {
	return Viewer{UserID: userID, Username: username, Authenticated: true}
}
