package rbac

import "fmt"

// Destination is the static per-route guard metadata attached to a
// navigable page at definition time.
type Destination struct {
	Path     string
	Public   bool
	Required []string
}

// The login page is the only public destination; every other page
// requires an active session plus its declared permission keys.
var destinations = []Destination{
	{Path: LoginPath, Public: true},
	{Path: HomePath},
	{Path: "/movements", Required: []string{PermMovementsRead}},
	{Path: "/movements/new", Required: []string{PermMovementsCreate}},
	{Path: "/users", Required: []string{PermUsersRead}},
	{Path: "/users/{id}", Required: []string{PermUsersEdit}},
	{Path: "/reports", Required: []string{PermReportsRead}},
}

func init() {
	mustValidateDestinations()
}

// Destinations returns the registered page destinations.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// DestinationFor looks up the registry entry for a path.
func DestinationFor(path string) (Destination, bool) {
	for _, d := range destinations {
		if d.Path == path {
			return d, true
		}
	}
	return Destination{}, false
}

// A requirement referencing a key outside the catalog is a
// definition-time bug, so it fails at package init rather than at
// request time.
func mustValidateDestinations() {
	for _, d := range destinations {
		for _, key := range d.Required {
			if !KnownPermission(key) {
				panic(fmt.Sprintf("rbac: destination %s requires unknown permission %q", d.Path, key))
			}
		}
	}
}
