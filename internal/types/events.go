//nolint:revive // types is a standard Go package name pattern
package types

// AuthAction names the kind of authChange notification.
type AuthAction string

// Auth actions broadcast on the authChange channel.
const (
	AuthLogin  AuthAction = "login"
	AuthLogout AuthAction = "logout"
	AuthUpdate AuthAction = "update"
)

// AuthChange is broadcast in-process whenever the session user changes.
// User is nil for logouts.
type AuthChange struct {
	Action AuthAction `json:"action"`
	User   *User      `json:"user"`
}
