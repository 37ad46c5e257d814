package circuit

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/acirc/acsolver/pkg/component"
	"github.com/acirc/acsolver/pkg/config"
	"github.com/acirc/acsolver/pkg/quantity"
)

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithLogger overrides the Builder's logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// Handle identifies a component added through a Builder. It is currently
// just the component's name, but kept as a distinct type so callers don't
// depend on that.
type Handle string

// Builder accumulates components and nodes and produces a frozen Circuit.
// It plays the role of toy-spice's AssignNodeBranchMaps + SetupDevices pair
// (pkg/circuit/circuit.go), generalised to assign every component - not
// just sources and inductors - its own branch row.
type Builder struct {
	cfg    config.Config
	logger *log.Logger

	components    []component.Component
	componentSeen map[string]bool

	nodeOrder []string
	nodeSeen  map[string]bool

	input      component.Component
	inputNodes [2]string

	noiseSinkName string

	frozen bool
}

// NewBuilder creates an empty Builder configured with cfg.
func NewBuilder(cfg config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:           cfg,
		logger:        log.New(io.Discard),
		componentSeen: make(map[string]bool),
		nodeSeen:      make(map[string]bool),
	}
	b.logger.SetLevel(log.WarnLevel)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) registerName(name string) error {
	if b.componentSeen[name] {
		return fmt.Errorf("%w: component %q", ErrDuplicateName, name)
	}
	b.componentSeen[name] = true
	return nil
}

func (b *Builder) registerNode(name string) {
	if isGroundName(name) || b.nodeSeen[name] {
		return
	}
	b.nodeSeen[name] = true
	b.nodeOrder = append(b.nodeOrder, name)
}

func (b *Builder) add(c component.Component, nodeNames ...string) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	if err := b.registerName(c.Name()); err != nil {
		return err
	}
	for _, n := range nodeNames {
		b.registerNode(n)
	}
	b.components = append(b.components, c)
	return nil
}

// AddResistor adds a resistor between n1 and n2.
func (b *Builder) AddResistor(name, n1, n2 string, ohms float64) (Handle, error) {
	r, err := component.NewResistor(name, n1, n2, ohms)
	if err != nil {
		return "", err
	}
	if err := b.add(r, n1, n2); err != nil {
		return "", err
	}
	return Handle(name), nil
}

// AddCapacitor adds a capacitor between n1 and n2.
func (b *Builder) AddCapacitor(name, n1, n2 string, farads float64) (Handle, error) {
	c, err := component.NewCapacitor(name, n1, n2, farads)
	if err != nil {
		return "", err
	}
	if err := b.add(c, n1, n2); err != nil {
		return "", err
	}
	return Handle(name), nil
}

// AddInductor adds an inductor between n1 and n2.
func (b *Builder) AddInductor(name, n1, n2 string, henries float64) (Handle, error) {
	l, err := component.NewInductor(name, n1, n2, henries)
	if err != nil {
		return "", err
	}
	if err := b.add(l, n1, n2); err != nil {
		return "", err
	}
	return Handle(name), nil
}

// AddResistorValue adds a resistor whose value is given as an SI-prefixed
// string (e.g. "4.7k", "1meg"), per SPEC_FULL.md §4.6's quantity
// convenience constructors.
func (b *Builder) AddResistorValue(name, n1, n2, value string) (Handle, error) {
	q, err := quantity.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: resistor %s: %v", component.ErrInvalidParameter, name, err)
	}
	return b.AddResistor(name, n1, n2, q.Value)
}

// AddCapacitorValue adds a capacitor whose value is given as an
// SI-prefixed string (e.g. "159.155n").
func (b *Builder) AddCapacitorValue(name, n1, n2, value string) (Handle, error) {
	q, err := quantity.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: capacitor %s: %v", component.ErrInvalidParameter, name, err)
	}
	return b.AddCapacitor(name, n1, n2, q.Value)
}

// AddInductorValue adds an inductor whose value is given as an SI-prefixed
// string (e.g. "10m").
func (b *Builder) AddInductorValue(name, n1, n2, value string) (Handle, error) {
	q, err := quantity.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: inductor %s: %v", component.ErrInvalidParameter, name, err)
	}
	return b.AddInductor(name, n1, n2, q.Value)
}

// AddOpAmp adds an ideal op-amp with non-inverting input nonInv, inverting
// input inv, and output out.
func (b *Builder) AddOpAmp(name string, nonInv, inv, out string, params component.OpAmpParams) (Handle, error) {
	o, err := component.NewOpAmp(name, nonInv, inv, out, params)
	if err != nil {
		return "", err
	}
	if err := b.add(o, nonInv, inv, out); err != nil {
		return "", err
	}
	return Handle(name), nil
}

// SetVoltageInput installs the circuit's input as an ideal voltage source
// between pNode (+) and nNode (-): it imposes its unit excitation on the
// nodes directly and is never loaded by a series impedance. impedance is
// accepted and validated for parity with SetCurrentInput and the analysis
// contract's impedance parameter (spec §6), and a negative value still
// falls back to the configured default input impedance with a logged
// warning, but the resolved value has no effect on the assembled matrix.
func (b *Builder) SetVoltageInput(pNode, nNode string, impedance float64) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	z := b.resolveImpedance(impedance)
	in, err := component.NewVoltageInput("input", pNode, nNode, complex(z, 0))
	if err != nil {
		return err
	}
	return b.setInput(in, pNode, nNode)
}

// SetCurrentInput installs the circuit's input as a Norton current source
// injecting from pNode to nNode, with an optional shunt impedance.
func (b *Builder) SetCurrentInput(pNode, nNode string, seriesImpedance float64) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	z := b.resolveImpedance(seriesImpedance)
	in, err := component.NewCurrentInput("input", pNode, nNode, complex(z, 0))
	if err != nil {
		return err
	}
	return b.setInput(in, pNode, nNode)
}

func (b *Builder) resolveImpedance(z float64) float64 {
	if z < 0 {
		b.logger.Warn("negative input impedance requested, using configured default",
			"default", b.cfg.Analysis.DefaultInputImpedance)
		return b.cfg.Analysis.DefaultInputImpedance
	}
	return z
}

func (b *Builder) setInput(in component.Component, pNode, nNode string) error {
	if err := b.add(in, pNode, nNode); err != nil {
		return err
	}
	b.input = in
	b.inputNodes = [2]string{pNode, nNode}
	return nil
}

// SetNoiseSink designates the node or component a noise analysis
// accumulates contributions against. The name is resolved lazily, at
// Freeze, so it may name a component added after this call.
func (b *Builder) SetNoiseSink(nodeOrComponent string) error {
	if b.frozen {
		return ErrAlreadyFrozen
	}
	b.noiseSinkName = nodeOrComponent
	return nil
}

// Freeze validates the accumulated components and nodes and returns an
// immutable Circuit. The Builder is left usable only for inspection after
// this call; further Add*/Set* calls return ErrAlreadyFrozen.
func (b *Builder) Freeze() (*Circuit, error) {
	if b.frozen {
		return nil, ErrAlreadyFrozen
	}
	if b.input == nil {
		return nil, ErrNoInput
	}
	b.frozen = true

	nComponents := len(b.components)
	nodeIndex := make(map[string]int, len(b.nodeOrder))
	for i, name := range b.nodeOrder {
		nodeIndex[name] = nComponents + 1 + i
	}

	for _, c := range b.components {
		nodes := make([]int, len(c.NodeNames()))
		for j, name := range c.NodeNames() {
			if isGroundName(name) {
				nodes[j] = groundIndex
				continue
			}
			idx, ok := nodeIndex[name]
			if !ok {
				return nil, fmt.Errorf("%w: node %q referenced by %q", ErrUnknownElement, name, c.Name())
			}
			nodes[j] = idx
		}
		c.SetNodes(nodes)
	}

	circ := &Circuit{
		Config:     b.cfg,
		components: b.components,
		nodeNames:  b.nodeOrder,
		nodeIndex:  nodeIndex,
		input:      b.input,
		inputNodes: b.inputNodes,
	}

	if b.noiseSinkName != "" {
		sink, err := circ.ResolveSink(b.noiseSinkName)
		if err != nil {
			return nil, err
		}
		circ.noiseSink = &sink
	}

	return circ, nil
}
