// Package fm implements a four-operator phase-modulation synthesis voice.
//
// Each operator is a phase-accumulator oscillator with a continuous
// sine/triangle/saw/pulse warp morph (PolyBLEP-corrected on the
// discontinuous shapes), a three-character wave folder, and a soft-clipped
// self-feedback path. One of eleven fixed routing algorithms decides which
// operators phase-modulate which others and which are summed as carriers.
// The whole network runs twice per host sample at half the sample period;
// the two results are averaged and passed through a one-pole DC blocker,
// then optionally re-modulated by an external audio-rate signal.
//
// Per-operator values live in fixed arrays of length 4. Index 0 is
// operator 1 up to index 3 for operator 4: the panel-facing numbering is
// 1-based while all internal arithmetic is 0-based.
//
// The per-sample entry point is Engine.ProcessSample. Persistent state is
// confined to the engine's State value (operator phases, feedback memory,
// DC blocker cells); Params is rebuilt by the caller every sample and never
// retained. Processing is synchronous, allocation-free and single-owner.
package fm
