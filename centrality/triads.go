// File: triads.go
// Role: triangle-based local structure (clustering) and the directed triad census.

package centrality

import "strings"

// Clustering returns the directed clustering coefficient per vertex:
// t / (2·(d(d-1) - 2·b)), where t counts directed triangles through the
// vertex, d is its total degree and b its reciprocated degree, all ignoring
// self-loops. Vertices with no triangles score 0.
//
// Complexity: O(Σ d_v · d_max).
func Clustering(s *Snapshot) ([]float64, error) {
	if s == nil {
		return nil, ErrGraphNil
	}
	n := s.N()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		ip, is := without(s.In[i], i), without(s.Out[i], i)
		t := 0
		for _, nbrs := range [][]int{ip, is} {
			for _, j := range nbrs {
				jp, js := without(s.In[j], j), without(s.Out[j], j)
				t += intersect(ip, jp) + intersect(ip, js) + intersect(is, jp) + intersect(is, js)
			}
		}
		if t == 0 {
			continue
		}
		dt := len(ip) + len(is)
		db := intersect(ip, is)
		out[i] = float64(t) / float64(2*(dt*(dt-1)-2*db))
	}

	return out, nil
}

// without returns sorted xs minus v, sharing storage when v is absent.
func without(xs []int, v int) []int {
	for k, x := range xs {
		if x == v {
			out := make([]int, 0, len(xs)-1)
			out = append(out, xs[:k]...)
			return append(out, xs[k+1:]...)
		}
		if x > v {
			break
		}
	}

	return xs
}

// intersect counts common elements of two sorted slices.
func intersect(a, b []int) int {
	c, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			c++
			i++
			j++
		}
	}

	return c
}

// TriadNames lists the 16 directed triad types in canonical MAN order.
var TriadNames = [16]string{
	"003", "012", "102", "021D", "021U", "021C", "111D", "111U",
	"030T", "030C", "201", "120D", "120U", "120C", "210", "300",
}

// tricodes maps the 6-bit edge code of an ordered triple onto a 1-based
// index into TriadNames.
var tricodes = [64]uint8{
	1, 2, 2, 3, 2, 4, 6, 8, 2, 6, 5, 7, 3, 8, 7, 11,
	2, 6, 4, 8, 5, 9, 9, 13, 6, 10, 9, 14, 7, 14, 12, 15,
	2, 5, 6, 7, 6, 9, 10, 14, 4, 9, 9, 12, 8, 13, 14, 15,
	3, 7, 8, 11, 7, 12, 14, 15, 8, 14, 13, 15, 11, 15, 15, 16,
}

// Census holds triad counts indexed like TriadNames.
type Census [16]int64

// Get returns the count for a triad name, or 0 for unknown names.
func (c Census) Get(name string) int64 {
	for i, n := range TriadNames {
		if n == name {
			return c[i]
		}
	}

	return 0
}

// SumContaining sums the counts of every triad type whose name contains sub.
func (c Census) SumContaining(sub string) int64 {
	var sum int64
	for i, n := range TriadNames {
		if strings.Contains(n, sub) {
			sum += c[i]
		}
	}

	return sum
}

// TriadCensus counts every unordered vertex triple by its directed triad
// type using the Batagelj–Mrvar algorithm. Only connected triads are
// enumerated; dyadic types come from neighbourhood sizes and "003" is the
// remainder of C(n,3).
//
// Complexity: O(Σ_v d_v² ) time, O(n) extra memory.
func TriadCensus(s *Snapshot) (Census, error) {
	var c Census
	if s == nil {
		return c, ErrGraphNil
	}
	n := s.N()

	has := func(u, v int) bool { return contains(s.Out[u], v) }
	tricode := func(v, u, w int) int {
		code := 0
		if has(v, u) {
			code |= 1
		}
		if has(u, v) {
			code |= 2
		}
		if has(v, w) {
			code |= 4
		}
		if has(w, v) {
			code |= 8
		}
		if has(u, w) {
			code |= 16
		}
		if has(w, u) {
			code |= 32
		}
		return code
	}
	adjacent := func(a, b int) bool { return has(a, b) || has(b, a) }

	for v := 0; v < n; v++ {
		vn := union(s.In[v], s.Out[v])
		for _, u := range vn {
			if u <= v {
				continue
			}
			nb := union(vn, union(s.In[u], s.Out[u]))
			nb = without(without(nb, u), v)
			for _, w := range nb {
				if u < w || (v < w && w < u && !adjacent(v, w)) {
					c[tricodes[tricode(v, u, w)]-1]++
				}
			}
			rest := int64(n - len(nb) - 2)
			if has(v, u) && has(u, v) {
				c[2] += rest
			} else {
				c[1] += rest
			}
		}
	}

	var found int64
	for _, k := range c {
		found += k
	}
	nn := int64(n)
	c[0] = nn*(nn-1)*(nn-2)/6 - found

	return c, nil
}

func contains(sorted []int, v int) bool {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case sorted[mid] < v:
			lo = mid + 1
		case sorted[mid] > v:
			hi = mid
		default:
			return true
		}
	}

	return false
}

// union merges two sorted duplicate-free slices.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)

	return append(out, b[j:]...)
}
