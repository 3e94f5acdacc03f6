package redis

import "strconv"

// DefaultPrefix namespaces every key written by the repository.
const DefaultPrefix = "marks:"

// keyspace builds Redis keys under a common prefix.
type keyspace struct {
	prefix string
}

// bookmark holds the JSON record of one bookmark.
func (k keyspace) bookmark(id int64) string {
	return k.prefix + "bookmark:" + strconv.FormatInt(id, 10)
}

// all is the set of every bookmark id.
func (k keyspace) all() string { return k.prefix + "bookmarks:all" }

// url maps a URL to the id that owns it.
func (k keyspace) url(u string) string { return k.prefix + "bookmark:url:" + u }

// nextID is the INCR counter used for id assignment.
func (k keyspace) nextID() string { return k.prefix + "bookmark:next_id" }
