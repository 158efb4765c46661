// Package cli provides portalctl, the command-line client of the community
// event portal.
//
// With a command on the command line it runs that command once:
//
//	portalctl signup
//	portalctl verify
//	portalctl login
//	portalctl whoami
//	portalctl logout
//	portalctl events <community> [q]
//	portalctl add-event
//	portalctl rename-event <id> <name...>
//	portalctl delete-event <id>
//	portalctl health
//
// Without one it starts an interactive shell accepting the same commands.
// Passwords are read without echo and wiped after use. A successful login
// is remembered in the local profile database until logout.
package cli
