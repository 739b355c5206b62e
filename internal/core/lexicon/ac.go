package lexicon

// automaton is a byte level Aho-Corasick machine over folded UTF-8.
// Each node keeps a dense 256-way table so the scan loop never hashes

const none int32 = -1

type node struct {
	next [256]int32
	fail int32
	out  []int32 // term ids ending here, own and inherited through fail links
}

type automaton struct {
	nodes []node
}

func newNode() node {
	var n node
	for i := range n.next {
		n.next[i] = none
	}
	return n
}

func newAutomaton() *automaton {
	return &automaton{nodes: []node{newNode()}}
}

func (a *automaton) add(pat []byte, id int32) {
	if len(pat) == 0 {
		return
	}
	var s int32
	for _, b := range pat {
		nx := a.nodes[s].next[b]
		if nx == none {
			nx = int32(len(a.nodes))
			a.nodes[s].next[b] = nx
			a.nodes = append(a.nodes, newNode())
		}
		s = nx
	}
	a.nodes[s].out = append(a.nodes[s].out, id)
}

// build wires failure links breadth first
func (a *automaton) build() {
	queue := make([]int32, 0, len(a.nodes))
	for b := range 256 {
		if s := a.nodes[0].next[b]; s != none {
			a.nodes[s].fail = 0
			queue = append(queue, s)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		r := queue[qi]
		for b := range 256 {
			s := a.nodes[r].next[b]
			if s == none {
				continue
			}
			queue = append(queue, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].next[b] == none {
				f = a.nodes[f].fail
			}
			if nx := a.nodes[f].next[b]; nx != none && nx != s {
				a.nodes[s].fail = nx
			}
			a.nodes[s].out = append(a.nodes[s].out, a.nodes[a.nodes[s].fail].out...)
		}
	}
}

// scan reports (end, id) for every occurrence; end is exclusive.
// Returning false from fn stops the scan
func (a *automaton) scan(text []byte, fn func(end int, id int32) bool) {
	var s int32
	for i, b := range text {
		for s != 0 && a.nodes[s].next[b] == none {
			s = a.nodes[s].fail
		}
		if nx := a.nodes[s].next[b]; nx != none {
			s = nx
		}
		for _, id := range a.nodes[s].out {
			if !fn(i+1, id) {
				return
			}
		}
	}
}
