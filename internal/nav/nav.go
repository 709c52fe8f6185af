// Package nav implements declarative navigation: only links declared in the
// active profile can be opened, by name.
package nav

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
)

// ErrUnknownLink is returned for a name no link was declared for.
var ErrUnknownLink = errors.New("unknown link")

// Resolver turns a link target into an absolute URL.
type Resolver interface {
	ResolveURL(ref string) (string, error)
}

// Navigator opens declared links.
type Navigator struct {
	links    map[string]string
	resolver Resolver
	open     func(string) error
}

// New returns a Navigator over links (name to path or URL). A nil open
// function defaults to OpenBrowser.
func New(links map[string]string, resolver Resolver, open func(string) error) *Navigator {
	if open == nil {
		open = OpenBrowser
	}
	copied := make(map[string]string, len(links))
	for name, target := range links {
		copied[name] = target
	}
	return &Navigator{links: copied, resolver: resolver, open: open}
}

// Names lists the declared link names in sorted order.
func (n *Navigator) Names() []string {
	names := make([]string, 0, len(n.links))
	for name := range n.links {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// URL resolves the link called name.
func (n *Navigator) URL(name string) (string, error) {
	target, ok := n.links[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLink, name)
	}
	if n.resolver == nil {
		if _, err := url.Parse(target); err != nil {
			return "", err
		}
		return target, nil
	}
	return n.resolver.ResolveURL(target)
}

// Open resolves and opens the link called name, returning the URL opened.
func (n *Navigator) Open(name string) (string, error) {
	u, err := n.URL(name)
	if err != nil {
		return "", err
	}
	if err := n.open(u); err != nil {
		return u, fmt.Errorf("failed to open %s: %w", u, err)
	}
	return u, nil
}

// OpenURL opens an already resolved URL, used for redirects such as the
// login page.
func (n *Navigator) OpenURL(u string) error {
	return n.open(u)
}
