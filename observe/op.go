package observe

// Op identifies a catalog operation for telemetry.
type Op struct {
	Entity string // cache namespace of the entity, e.g. "courses"
	Action string // list|get|create|update|delete
}

// Name returns "<entity>.<action>".
func (o Op) Name() string {
	if o.Action == "" {
		return o.Entity
	}
	return o.Entity + "." + o.Action
}

// SpanName returns "catalog.<entity>.<action>".
func (o Op) SpanName() string {
	return "catalog." + o.Name()
}
