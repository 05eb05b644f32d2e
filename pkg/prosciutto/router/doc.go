// Package router provides screen navigation with a registry, a back-navigation
// history and a single current screen.
//
// A Navigator owns visibility and ordering only. Screens are created by the
// application, registered once, and shown or hidden through the navigator.
// Applications keep one navigator for full-screen views and another one for
// popups; their histories are independent.
//
// # Basic Usage
//
//	// Define screen kinds as typed constants
//	const (
//	    KindTitle router.Kind = "title"
//	    KindLobby router.Kind = "lobby"
//	)
//
//	// Concrete screens embed a *router.Panel
//	type LobbyView struct {
//	    *router.Panel
//	    rooms []string
//	}
//
//	views := router.New("views")
//	views.Register(router.NewPanel(KindTitle), &LobbyView{Panel: router.NewPanel(KindLobby)})
//
//	views.ShowKind(KindTitle, false) // current=title, history=[]
//	views.ShowKind(KindLobby, true)  // current=lobby, history=[title]
//	views.ShowLast()                 // current=title, history=[]
//
// # Failure Semantics
//
// Navigation never panics. Showing a nil or unregistered screen and going back
// with an empty history are logged and return ErrInvalidScreen,
// ErrNotRegistered or ErrEmptyHistory while leaving every piece of state as it
// was.
//
// # Change Notifications
//
// Changed emits the new current screen after every successful navigation, and
// nil when the navigator is closed or reset with a screen open. Subscribers
// run synchronously in subscription order.
package router
