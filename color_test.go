// Copyright © 2023 Lucas Robidou
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sans

import (
	"math/rand"
	"testing"
)

func randomMembers(n, size int) []int {
	picked := make(map[int]struct{}, size)
	for len(picked) < size {
		picked[rand.Intn(n)] = struct{}{}
	}
	m := make([]int, 0, size)
	for i := 0; i < n; i++ {
		if _, ok := picked[i]; ok {
			m = append(m, i)
		}
	}
	return m
}

func TestColor64(t *testing.T) {
	for trial := 0; trial < 100; trial++ {
		n := rand.Intn(64) + 1
		ops := newColor64Ops(n)
		members := randomMembers(n, rand.Intn(n+1))

		c := ops.zero()
		for _, i := range members {
			c = ops.set(c, i)
		}

		if ops.popcount(c) != len(members) {
			t.Fatalf("popcount: got %d, want %d", ops.popcount(c), len(members))
		}
		if ops.popcount(ops.complement(c)) != n-len(members) {
			t.Fatalf("complement popcount: got %d, want %d",
				ops.popcount(ops.complement(c)), n-len(members))
		}
		got := ops.members(c)
		if len(got) != len(members) {
			t.Fatalf("members length: got %d, want %d", len(got), len(members))
		}
		for i := range got {
			if got[i] != members[i] {
				t.Fatalf("members: got %v, want %v", got, members)
			}
		}
		for i := 0; i < n; i++ {
			want := false
			for _, j := range members {
				if i == j {
					want = true
				}
			}
			if ops.test(c, i) != want {
				t.Fatalf("test(%d): got %v, want %v", i, ops.test(c, i), want)
			}
			if ops.test(ops.complement(c), i) == want {
				t.Fatalf("complement test(%d) not flipped", i)
			}
		}
		if !ops.isZero(ops.and(c, ops.complement(c))) {
			t.Fatal("c AND complement(c) not empty")
		}
		if !ops.isZero(ops.diff(c, c)) {
			t.Fatal("c DIFF c not empty")
		}
	}
}

// TestColorXLMatches64 cross-checks the wide representation against the
// single-word one for N <= 64.
func TestColorXLMatches64(t *testing.T) {
	for trial := 0; trial < 100; trial++ {
		n := rand.Intn(64) + 1
		narrow := newColor64Ops(n)
		wide := newColorXLOps(n)
		members := randomMembers(n, rand.Intn(n+1))

		c64 := narrow.zero()
		cxl := wide.zero()
		for _, i := range members {
			c64 = narrow.set(c64, i)
			cxl = wide.set(cxl, i)
		}

		if narrow.popcount(c64) != wide.popcount(cxl) {
			t.Fatal("popcount mismatch")
		}
		if wide.complement(cxl)[0] != narrow.complement(c64) {
			t.Fatal("complement mismatch")
		}
		g64, gxl := narrow.members(c64), wide.members(cxl)
		for i := range g64 {
			if g64[i] != gxl[i] {
				t.Fatal("members mismatch")
			}
		}
	}
}

func TestColorXLWide(t *testing.T) {
	n := 200
	ops := newColorXLOps(n)
	members := []int{0, 63, 64, 100, 127, 128, 199}

	c := ops.zero()
	for _, i := range members {
		c = ops.set(c, i)
	}
	if ops.popcount(c) != len(members) {
		t.Fatalf("popcount: got %d", ops.popcount(c))
	}
	if ops.popcount(ops.complement(c)) != n-len(members) {
		t.Fatalf("complement popcount: got %d", ops.popcount(ops.complement(c)))
	}
	got := ops.members(c)
	for i := range members {
		if got[i] != members[i] {
			t.Fatalf("members: got %v, want %v", got, members)
		}
	}
	if ops.test(c, 1) || !ops.test(c, 64) {
		t.Fatal("test across word boundary broken")
	}

	// complement must stay within the genome bound
	if ops.test(ops.complement(c), 200) || ops.test(ops.complement(c), 255) {
		t.Fatal("complement leaked beyond bound")
	}
}

func TestColorLess(t *testing.T) {
	ops := newColorXLOps(130)
	a := ops.set(ops.zero(), 5)
	b := ops.set(ops.zero(), 129)
	if !ops.less(a, b) || ops.less(b, a) {
		t.Fatal("less must order by highest word first")
	}
	if ops.less(a, a) {
		t.Fatal("less not irreflexive")
	}
}
