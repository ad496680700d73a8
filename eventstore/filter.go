package eventstore

// Filter describes one dynamic event stream: events matching any of the event
// types AND any of the payload predicates. An empty predicate list matches all
// payloads; an empty event type list matches all types.
//
// Filters should only be constructed with BuildEventFilter.
type Filter struct {
	eventTypes []string
	predicates []Predicate
}

// EventTypes returns the event types this filter matches.
func (f Filter) EventTypes() []string {
	return f.eventTypes
}

// Predicates returns the payload predicates this filter matches.
func (f Filter) Predicates() []Predicate {
	return f.predicates
}

// Predicate is a key/value match against a top-level payload property.
type Predicate struct {
	key string
	val string
}

// P is a shorthand factory method for a Predicate.
func P(key string, val string) Predicate {
	return Predicate{key: key, val: val}
}

// Key returns the payload property name.
func (p Predicate) Key() string {
	return p.key
}

// Val returns the value to match.
func (p Predicate) Val() string {
	return p.val
}

// FilterBuilder builds a Filter with a guided fluent interface.
type FilterBuilder struct{}

// BuildEventFilter starts building a Filter.
func BuildEventFilter() FilterBuilder {
	return FilterBuilder{}
}

// Matching starts the description of the stream to match.
func (FilterBuilder) Matching() FilterItemBuilder {
	return FilterItemBuilder{}
}

// MatchingAnyEvent returns a Filter that matches every event in the store.
func (FilterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

// FilterItemBuilder accumulates event types and predicates.
type FilterItemBuilder struct {
	filter Filter
}

// AnyEventTypeOf adds event types; empty strings and duplicates are dropped.
func (b FilterItemBuilder) AnyEventTypeOf(eventTypes ...string) FilterItemBuilder {
	for _, eventType := range eventTypes {
		if eventType == "" || contains(b.filter.eventTypes, eventType) {
			continue
		}
		b.filter.eventTypes = append(b.filter.eventTypes, eventType)
	}

	return b
}

// AndAnyPredicateOf adds payload predicates combined with OR.
func (b FilterItemBuilder) AndAnyPredicateOf(predicates ...Predicate) FilterItemBuilder {
	for _, predicate := range predicates {
		if predicate.key == "" {
			continue
		}
		b.filter.predicates = append(b.filter.predicates, predicate)
	}

	return b
}

// Finalize returns the built Filter.
func (b FilterItemBuilder) Finalize() Filter {
	return b.filter
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}

	return false
}
