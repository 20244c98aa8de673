package labels

import "strings"

// Standard label keys for Compute Engine resources.
const (
	// KeyManagedBy identifies the management system.
	KeyManagedBy = "managed-by"

	// KeyRun identifies which sweep run a resource belongs to.
	KeyRun = "gcevm-run"

	// KeyZone records the target zone (also implied by the resource location,
	// kept as a label for aggregation in billing exports).
	KeyZone = "gcevm-zone"
)

// ManagedByGcevm is the value set on every resource this tool creates.
const ManagedByGcevm = "gcevm"

const maxLabelLen = 63

// Builder provides a fluent interface for building Compute Engine labels.
type Builder struct {
	labels map[string]string
}

// NewBuilder creates a label builder with the run name and managed-by
// labels pre-set.
func NewBuilder(run string) *Builder {
	return &Builder{
		labels: map[string]string{
			KeyManagedBy: ManagedByGcevm,
			KeyRun:       Sanitize(run),
		},
	}
}

// WithZone adds the zone label.
func (b *Builder) WithZone(zone string) *Builder {
	b.labels[KeyZone] = Sanitize(zone)
	return b
}

// Merge adds all labels from the provided map, sanitizing keys and values.
func (b *Builder) Merge(extra map[string]string) *Builder {
	for k, v := range extra {
		b.labels[Sanitize(k)] = Sanitize(v)
	}
	return b
}

// Build returns a copy of the labels map.
func (b *Builder) Build() map[string]string {
	result := make(map[string]string, len(b.labels))
	for k, v := range b.labels {
		result[k] = v
	}
	return result
}

// Sanitize converts a value into a Compute Engine-safe label string:
// lowercase, invalid characters replaced with hyphens, truncated to 63
// characters, no leading or trailing hyphen.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	var sb strings.Builder
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
			sb.WriteRune(c)
		default:
			sb.WriteRune('-')
		}
	}
	out := sb.String()
	if len(out) > maxLabelLen {
		out = out[:maxLabelLen]
	}
	return strings.Trim(out, "-")
}
