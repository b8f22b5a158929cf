package framework

import (
	"fmt"
	"strings"
)

// Marker is a piece of metadata that a test author attaches to a test or to a group of tests.
// Its meaning is defined by whichever plugin consumes markers of that name.
type Marker struct {
	Name string
	Args []interface{}
}

// Mark creates a Marker.
func Mark(name string, args ...interface{}) Marker {
	return Marker{Name: name, Args: args}
}

func (m Marker) String() string {
	ss := make([]string, 0, len(m.Args))
	for _, a := range m.Args {
		ss = append(ss, fmt.Sprintf("%#v", a))
	}
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(ss, ", "))
}

// MarkerInfo describes a marker that a plugin has registered with the session.
type MarkerInfo struct {
	Name        string
	Description string
}
