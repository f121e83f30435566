package fm

// NumAlgorithms is the number of routing descriptors in the table.
const NumAlgorithms = 11

// Algorithm describes one fixed modulation routing: which operators
// phase-modulate which others, and which operators sum into the output mix.
//
// Mod[src][dst] is true when operator src modulates operator dst. The table
// only ever sets entries with src > dst (operator 4 may modulate 3, 2 and 1;
// operator 2 only 1; never the reverse), so every routing graph is acyclic
// and a single descending evaluation pass per sample sees every modulator
// before its targets. Any algorithm added to the table must preserve this
// ordering; the engine does not check it at runtime.
type Algorithm struct {
	Mod     [4][4]bool
	Carrier [4]bool
	Name    string
}

// Algorithms is the immutable routing table. Indices are 0-based; panel
// numbering is 1-based ("algorithm 1" is Algorithms[0]).
var Algorithms = [NumAlgorithms]Algorithm{
	// Algorithm 1: 4=>3=>2=>1, carrier 1.
	{
		Mod:     [4][4]bool{{}, {true}, {false, true}, {false, false, true}},
		Carrier: [4]bool{true, false, false, false},
		Name:    "4 => 3 => 2 => 1",
	},
	// Algorithm 2: (3+4)=>2=>1, carrier 1.
	{
		Mod:     [4][4]bool{{}, {true}, {false, true}, {false, true}},
		Carrier: [4]bool{true, false, false, false},
		Name:    "(3+4) => 2 => 1",
	},
	// Algorithm 3: 4=>2=>1 with 3=>1, carrier 1.
	{
		Mod:     [4][4]bool{{}, {true}, {true}, {false, true}},
		Carrier: [4]bool{true, false, false, false},
		Name:    "4 => 2 => 1, 3 => 1",
	},
	// Algorithm 4: 4=>3=>1 with 2=>1, carrier 1.
	{
		Mod:     [4][4]bool{{}, {true}, {true}, {false, false, true}},
		Carrier: [4]bool{true, false, false, false},
		Name:    "4 => 3 => 1, 2 => 1",
	},
	// Algorithm 5: 4=>3 and 2=>1, carriers 1 and 3.
	{
		Mod:     [4][4]bool{{}, {true}, {}, {false, false, true}},
		Carrier: [4]bool{true, false, true, false},
		Name:    "4 => 3, 2 => 1",
	},
	// Algorithm 6: 4=>(1,2,3), carriers 1, 2 and 3.
	{
		Mod:     [4][4]bool{{}, {}, {}, {true, true, true}},
		Carrier: [4]bool{true, true, true, false},
		Name:    "4 => (1, 2, 3)",
	},
	// Algorithm 7: 4=>3 with 2 and 1 free, carriers 1, 2 and 3.
	{
		Mod:     [4][4]bool{{}, {}, {}, {false, false, true}},
		Carrier: [4]bool{true, true, true, false},
		Name:    "4 => 3, 2, 1",
	},
	// Algorithm 8: no modulation, all four carriers.
	{
		Mod:     [4][4]bool{},
		Carrier: [4]bool{true, true, true, true},
		Name:    "1, 2, 3, 4",
	},
	// Algorithm 9: 4=>3=>(1,2), carriers 1 and 2.
	{
		Mod:     [4][4]bool{{}, {}, {true, true}, {false, false, true}},
		Carrier: [4]bool{true, true, false, false},
		Name:    "4 => 3 => (1, 2)",
	},
	// Algorithm 10: (3+4)=>(1,2), carriers 1 and 2.
	{
		Mod:     [4][4]bool{{}, {}, {true, true}, {true, true}},
		Carrier: [4]bool{true, true, false, false},
		Name:    "(3+4) => (1, 2)",
	},
	// Algorithm 11: (2+3+4)=>1, carrier 1.
	{
		Mod:     [4][4]bool{{}, {true}, {true}, {true}},
		Carrier: [4]bool{true, false, false, false},
		Name:    "(2+3+4) => 1",
	},
}

// Edges returns the modulation edges of the algorithm as 1-based
// (source, destination) operator pairs, in source-major order.
func (a *Algorithm) Edges() [][2]int {
	var edges [][2]int

	for src := range 4 {
		for dst := range 4 {
			if a.Mod[src][dst] {
				edges = append(edges, [2]int{src + 1, dst + 1})
			}
		}
	}

	return edges
}

// Carriers returns the 1-based operator numbers summed into the mix.
func (a *Algorithm) Carriers() []int {
	var carriers []int

	for op := range 4 {
		if a.Carrier[op] {
			carriers = append(carriers, op+1)
		}
	}

	return carriers
}
