package ir

import (
	"iter"
	"strconv"
)

// Property is one key/value pair of a Collection.
type Property struct {
	Key   string
	Value *Token
}

// Collection is an ordered list of properties. Keys need not be unique.
//
// A collection is an array when every key is a non-negative integer and
// the keys are exactly 0..Len()-1 in some order. The predicate is
// computed from the properties on each call, so no mutation can leave it
// stale.
//
// A Collection is not safe for concurrent mutation.
type Collection struct {
	props []Property
}

func NewCollection() *Collection {
	return &Collection{}
}

// FromProperties builds a collection holding props in order.
func FromProperties(props ...Property) *Collection {
	c := &Collection{props: make([]Property, len(props))}
	copy(c.props, props)
	return c
}

// FromSlice builds an array collection keyed "0".."n-1".
func FromSlice(vals ...*Token) *Collection {
	c := &Collection{props: make([]Property, len(vals))}
	for i, v := range vals {
		c.props[i] = Property{Key: strconv.Itoa(i), Value: v}
	}
	return c
}

func (c *Collection) Len() int {
	return len(c.props)
}

// At returns a copy of the i'th property.
func (c *Collection) At(i int) Property {
	return c.props[i]
}

// All iterates over the properties in order.
func (c *Collection) All() iter.Seq2[string, *Token] {
	return func(yield func(string, *Token) bool) {
		for _, p := range c.props {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Properties returns a copy of the property list.
func (c *Collection) Properties() []Property {
	res := make([]Property, len(c.props))
	copy(res, c.props)
	return res
}

func (c *Collection) Keys() []string {
	res := make([]string, len(c.props))
	for i := range c.props {
		res[i] = c.props[i].Key
	}
	return res
}

// Get returns the value of the first property with the given key, or nil.
func (c *Collection) Get(key string) *Token {
	if i := c.index(key); i >= 0 {
		return c.props[i].Value
	}
	return nil
}

// Lookup follows keys through nested collections. It returns nil if any
// step is missing or is not a collection.
func (c *Collection) Lookup(keys ...string) *Token {
	cur := c
	var res *Token
	for i, key := range keys {
		res = cur.Get(key)
		if res == nil {
			return nil
		}
		if i == len(keys)-1 {
			break
		}
		if res.typ != CollectionType {
			return nil
		}
		cur = res.coll
	}
	return res
}

// Set replaces the value of the first property with the given key,
// keeping its position, or appends a new property.
func (c *Collection) Set(key string, v *Token) {
	if i := c.index(key); i >= 0 {
		c.props[i].Value = v
		return
	}
	c.props = append(c.props, Property{Key: key, Value: v})
}

// Add appends a property without looking for an existing key.
func (c *Collection) Add(key string, v *Token) {
	c.props = append(c.props, Property{Key: key, Value: v})
}

// AppendArrayItem appends v under the next array index. It fails with
// ErrNotAnArray unless the collection is an array.
func (c *Collection) AppendArrayItem(v *Token) error {
	if !c.IsArray() {
		return ErrNotAnArray
	}
	next := 0
	for _, p := range c.props {
		i, _ := arrayIndex(p.Key)
		if i+1 > next {
			next = i + 1
		}
	}
	c.props = append(c.props, Property{Key: strconv.Itoa(next), Value: v})
	return nil
}

// RemoveByKey removes every property with the given key and returns how
// many were removed. When the collection was an array, the keys above the
// removed index are shifted down by one so it stays an array.
func (c *Collection) RemoveByKey(key string) int {
	wasArray := c.IsArray()
	n := c.removeFunc(func(p *Property) bool { return p.Key == key })
	if !wasArray || n == 0 {
		return n
	}
	if k, ok := arrayIndex(key); ok {
		c.shiftAbove(k)
	}
	return n
}

// RemoveByValue removes every property whose value equals v and returns
// how many were removed. When the collection was an array, keys above the
// index of the first match are shifted down by one.
func (c *Collection) RemoveByValue(v *Token) int {
	if !c.IsArray() {
		return c.removeFunc(func(p *Property) bool { return p.Value.Equal(v) })
	}
	first := -1
	for _, p := range c.props {
		if p.Value.Equal(v) {
			first, _ = arrayIndex(p.Key)
			break
		}
	}
	if first < 0 {
		return 0
	}
	n := c.removeFunc(func(p *Property) bool { return p.Value.Equal(v) })
	c.shiftAbove(first)
	return n
}

// IsArray reports whether the keys are exactly "0".."Len()-1" in any
// order. An empty collection is an array.
func (c *Collection) IsArray() bool {
	n := len(c.props)
	seen := make([]bool, n)
	for _, p := range c.props {
		i, ok := arrayIndex(p.Key)
		if !ok || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

// Equal reports whether both collections hold equal properties in the
// same order.
func (c *Collection) Equal(o *Collection) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil || len(c.props) != len(o.props) {
		return false
	}
	for i := range c.props {
		if c.props[i].Key != o.props[i].Key {
			return false
		}
		if !c.props[i].Value.Equal(o.props[i].Value) {
			return false
		}
	}
	return true
}

func (c *Collection) Clone() *Collection {
	res := &Collection{props: make([]Property, len(c.props))}
	for i, p := range c.props {
		res.props[i] = Property{Key: p.Key, Value: p.Value.Clone()}
	}
	return res
}

func (c *Collection) index(key string) int {
	for i := range c.props {
		if c.props[i].Key == key {
			return i
		}
	}
	return -1
}

func (c *Collection) removeFunc(f func(*Property) bool) int {
	j := 0
	for i := range c.props {
		if f(&c.props[i]) {
			continue
		}
		c.props[j] = c.props[i]
		j++
	}
	n := len(c.props) - j
	clear(c.props[j:])
	c.props = c.props[:j]
	return n
}

func (c *Collection) shiftAbove(k int) {
	for i := range c.props {
		p := &c.props[i]
		if idx, ok := arrayIndex(p.Key); ok && idx > k {
			p.Key = strconv.Itoa(idx - 1)
		}
	}
}

func arrayIndex(key string) (int, bool) {
	i, err := strconv.ParseInt(key, 10, 32)
	if err != nil || i < 0 {
		return 0, false
	}
	return int(i), true
}
