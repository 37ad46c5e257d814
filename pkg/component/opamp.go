package component

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/acirc/acsolver/pkg/matrix"
)

// OpAmpParams holds an op-amp's frequency-response and noise parameters,
// following the single-pole-plus-extras model of
// original_source/electronics/components.py's OpAmp class.
type OpAmpParams struct {
	A0    float64   // DC open-loop gain
	GBW   float64   // gain-bandwidth product, Hz
	Delay float64   // transport delay, seconds
	Zeros []float64 // extra zero frequencies, Hz
	Poles []float64 // extra pole frequencies, Hz

	VNoise  float64 // input voltage noise density, V/sqrt(Hz)
	INoise  float64 // input current noise density, A/sqrt(Hz)
	VCorner float64 // voltage noise corner frequency, Hz
	ICorner float64 // current noise corner frequency, Hz
}

// DefaultOpAmpParams returns an idealised op-amp: infinite gain and
// bandwidth, no delay, no noise. Useful for "ideal op-amp" circuits like
// the classic inverting-amplifier test case. Gain special-cases the
// infinite A0 and returns +Inf (the general formula would divide Inf by
// Inf and produce NaN), and Stamp then writes 1/gain = 0 without dividing.
func DefaultOpAmpParams() OpAmpParams {
	return OpAmpParams{A0: math.Inf(1), GBW: math.Inf(1)}
}

func validateOpAmpParams(name string, p OpAmpParams) error {
	if p.A0 == 0 {
		return fmt.Errorf("%w: op-amp %s: A0 must be non-zero", ErrInvalidParameter, name)
	}
	if p.GBW <= 0 {
		return fmt.Errorf("%w: op-amp %s: GBW must be positive", ErrInvalidParameter, name)
	}
	for _, z := range p.Zeros {
		if z == 0 {
			return fmt.Errorf("%w: op-amp %s: zero frequency must be non-zero", ErrInvalidParameter, name)
		}
	}
	for _, pz := range p.Poles {
		if pz == 0 {
			return fmt.Errorf("%w: op-amp %s: pole frequency must be non-zero", ErrInvalidParameter, name)
		}
	}
	return nil
}

// OpAmp is an ideal three-node gain element: output = gain(f) * (V+ - V-).
type OpAmp struct {
	base
	Params OpAmpParams
}

// NewOpAmp builds an op-amp with non-inverting input nonInv, inverting
// input inv, and output out.
func NewOpAmp(name, nonInv, inv, out string, params OpAmpParams) (*OpAmp, error) {
	if err := validateOpAmpParams(name, params); err != nil {
		return nil, err
	}
	return &OpAmp{base: newBase(name, []string{nonInv, inv, out}), Params: params}, nil
}

func (o *OpAmp) Kind() Kind { return KindOpAmp }

// Gain evaluates the op-amp's open-loop transfer function at freq (Hz):
//
//	A0 / (1 + A0*j*f/GBW) * exp(-j*2*pi*delay*f) * prod(1+j*f/zk) / prod(1+j*f/pk)
//
// An infinite A0 (DefaultOpAmpParams) is special-cased to exactly
// complex(Inf, 0): the naive formula divides Inf by Inf in that case and
// produces NaN instead of the intended ideal, frequency-independent gain.
func (o *OpAmp) Gain(freq float64) complex128 {
	p := o.Params
	if math.IsInf(p.A0, 0) {
		return complex(math.Inf(1), 0)
	}
	g := complex(p.A0, 0) / (complex(1, 0) + complex(p.A0, 0)*complex(0, freq)/complex(p.GBW, 0))
	g *= cmplx.Exp(complex(0, -2*math.Pi*p.Delay*freq))
	for _, z := range p.Zeros {
		g *= complex(1, 0) + complex(0, freq)/complex(z, 0)
	}
	for _, pz := range p.Poles {
		g /= complex(1, 0) + complex(0, freq)/complex(pz, 0)
	}
	return g
}

// Stamp writes the op-amp's gain-equation row:
//
//	-V_n1 + V_n2 + (1/gain(f))*V_n3 = 0   (at row k)
//	V_n3's KCL row gets +1 at column k    (op-amp sources current into n3)
//
// The output coefficient is added whenever n3 (the output) is non-ground,
// independent of n2 - see DESIGN.md's "Open Question decisions" #1 for why
// this deliberately differs from a literal reading of the Python source it
// was grounded on.
func (o *OpAmp) Stamp(row int, freq float64, mat matrix.Stamp) error {
	n := o.Nodes()
	n1, n2, n3 := n[0], n[1], n[2]

	if n1 != 0 {
		mat.Add(row, n1, -1, 0)
	}
	if n2 != 0 {
		mat.Add(row, n2, 1, 0)
	}
	if n3 != 0 {
		inv := complex(0, 0)
		if g := o.Gain(freq); !math.IsInf(real(g), 0) {
			inv = complex(1, 0) / g
		}
		mat.Add(row, n3, real(inv), imag(inv))
		mat.Add(n3, row, 1, 0)
	}
	return nil
}

// NoiseSources returns up to three intrinsic noise generators: a voltage
// noise source anchored at the op-amp's own row (series with the
// differential input), and two independent current noise sources, one at
// each input node, per DESIGN.md's Open Question decision #3. The voltage
// source is omitted when VNoise is zero, and both current sources when
// INoise is zero.
func (o *OpAmp) NoiseSources(float64, float64) []NoiseSource {
	p := o.Params
	sources := make([]NoiseSource, 0, 3)

	if p.VNoise != 0 {
		sources = append(sources, NoiseSource{
			Label:  o.name + ".vnoise",
			Anchor: NoiseAtSelf,
			Density: func(f float64) float64 {
				return p.VNoise * math.Sqrt(1+p.VCorner/f)
			},
		})
	}
	if p.INoise != 0 {
		density := func(f float64) float64 {
			return p.INoise * math.Sqrt(1+p.ICorner/f)
		}
		sources = append(sources,
			NoiseSource{Label: o.name + ".inoise+", Anchor: NoiseAtNode1, Density: density},
			NoiseSource{Label: o.name + ".inoise-", Anchor: NoiseAtNode2, Density: density},
		)
	}

	return sources
}
