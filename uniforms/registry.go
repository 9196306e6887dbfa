// Package uniforms binds the uniforms a program declares to feeds.
package uniforms

import (
	"github.com/charmbracelet/log"
	"github.com/richinsley/goshaderlive/feeds"
	"github.com/richinsley/goshaderlive/graphics"
)

// Supplier pushes one feed into one uniform.
type Supplier struct {
	Uniform graphics.UniformDescriptor
	Feed    feeds.Feed
	Marshal feeds.Marshal
}

// Push evaluates the feed against f and writes the result.
func (s Supplier) Push(dev graphics.Device, f *feeds.Frame) {
	values := s.Feed.Get(f)
	switch s.Marshal {
	case feeds.MarshalUnit:
		var unit int32
		if len(values) > 0 {
			unit = int32(values[0])
		}
		dev.SetTextureUnit(s.Uniform, unit)
	case feeds.MarshalScalar:
		var v float32
		if len(values) > 0 {
			v = values[0]
		}
		dev.SetScalar(s.Uniform, v)
	case feeds.MarshalTuple:
		dev.SetTuple(s.Uniform, Fit(values, s.Uniform.Components))
	case feeds.MarshalPacked:
		dev.WriteUniform(s.Uniform, graphics.Pack(Fit(values, s.Uniform.Size())))
	}
}

// Registry is the ordered set of suppliers for one program.
type Registry struct {
	program   uint32
	suppliers []Supplier
	skipped   []string
}

// Build enumerates the program's uniforms in declaration order and binds each
// one that has a feed in table. Uniforms without a feed, or of a type no
// write rule exists for, keep the value the driver gives them; each produces
// one warning.
func Build(p *graphics.Program, table *feeds.Table, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	r := &Registry{program: p.ID}
	for _, u := range p.Uniforms {
		feed, ok := table.Lookup(u.Name)
		if !ok || u.Kind == graphics.KindUnsupported {
			logger.Warn("uniform is not supported by this program", "uniform", u.Name)
			r.skipped = append(r.skipped, u.Name)
			continue
		}
		if feed.Shape.Components() != u.Size() {
			logger.Debug("uniform shape differs from its feed, values are fitted",
				"uniform", u.Name, "declared", u.Size(), "feed", feed.Shape)
		}
		r.suppliers = append(r.suppliers, Supplier{
			Uniform: u,
			Feed:    feed,
			Marshal: selectMarshal(u, feed),
		})
	}
	logger.Debug("uniforms bound", "program", p.ID, "bound", len(r.suppliers), "skipped", len(r.skipped))
	return r
}

// selectMarshal picks the write rule from the declared shape, falling back to
// the feed's own rule for plain vectors.
func selectMarshal(u graphics.UniformDescriptor, feed feeds.Feed) feeds.Marshal {
	switch {
	case u.Kind == graphics.KindSampler:
		return feeds.MarshalUnit
	case u.Kind == graphics.KindMatrix, u.Count > 1:
		return feeds.MarshalPacked
	case u.Components == 1:
		return feeds.MarshalScalar
	case feed.Marshal == feeds.MarshalPacked:
		return feeds.MarshalPacked
	}
	return feeds.MarshalTuple
}

// Program is the ID of the program the registry was built against.
func (r *Registry) Program() uint32 {
	return r.program
}

// Suppliers returns the bound suppliers in registration order.
func (r *Registry) Suppliers() []Supplier {
	return r.suppliers
}

// Len is the number of bound suppliers.
func (r *Registry) Len() int {
	return len(r.suppliers)
}

// Skipped lists the declared uniforms that had no feed.
func (r *Registry) Skipped() []string {
	return r.skipped
}

// Names lists the bound uniform names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.suppliers))
	for i, s := range r.suppliers {
		names[i] = s.Uniform.Name
	}
	return names
}

// Push runs every supplier in order. The program must be in use.
func (r *Registry) Push(dev graphics.Device, f *feeds.Frame) {
	for _, s := range r.suppliers {
		s.Push(dev, f)
	}
}
