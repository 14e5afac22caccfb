package session

import (
	"encoding/json"
	"net/http"
	"sync"
)

// Client resolves the visitor's identity against the auth API. It
// implements Resolver and is shared by every guarded page, so a burst of
// mounts still costs a single request.
type Client struct {
	mu       sync.Mutex
	status   Status
	watchers map[int]func()
	nextID   int
	fetching bool

	nav  NavigateFunc
	base string // prefix for the auth endpoint, set in tests
}

// NewClient returns a resolver backed by /api/auth/me. nav executes the
// redirect when resolution concludes nobody is signed in; a nil nav
// disables redirects, which is what the server-side render wants.
func NewClient(nav NavigateFunc) *Client {
	return &Client{
		status:   Status{Loading: true},
		watchers: map[int]func(){},
		nav:      nav,
	}
}

func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) Watch(fallback string, onChange func()) (stop func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.watchers[id] = onChange

	// A watch that arrives while a fetch is in flight shares its result.
	// A watch on a settled client re-resolves, so a page mounted right
	// after login sees the fresh session instead of the stale denial.
	start := !c.fetching
	if start {
		c.fetching = true
		c.status = Status{Loading: true}
	}
	c.mu.Unlock()

	if start {
		go c.resolve(fallback)
	}

	return func() {
		c.mu.Lock()
		delete(c.watchers, id)
		c.mu.Unlock()
	}
}

func (c *Client) resolve(fallback string) {
	user, ok := c.fetchMe()

	c.mu.Lock()
	c.fetching = false
	if ok {
		c.status = Status{User: user}
	} else {
		c.status = Status{}
	}
	callbacks := make([]func(), 0, len(c.watchers))
	for _, fn := range c.watchers {
		callbacks = append(callbacks, fn)
	}
	nav := c.nav
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	if !ok && nav != nil {
		nav(fallback)
	}
}

func (c *Client) fetchMe() (*Identity, bool) {
	res, err := http.Get(c.base + "/api/auth/me")
	if err != nil {
		return nil, false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, false
	}

	var id Identity
	if err := json.NewDecoder(res.Body).Decode(&id); err != nil {
		return nil, false
	}
	if id.Username == "" {
		return nil, false
	}
	return &id, true
}
