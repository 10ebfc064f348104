package datrie

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// byteKeys converts string literals to byte keys, as written (no
// sorting); tests that need sorted input list them in order.
func byteKeys(ss ...string) [][]byte {
	keys := make([][]byte, len(ss))

	for i, s := range ss {
		keys[i] = []byte(s)
	}

	return keys
}

// childrenOf scans the whole code space for the children of parent.
func childrenOf[L Label](da *DoubleArray[L], parent uint32) []uint32 {
	v := da.view()

	var children []uint32

	base := da.nodes[parent].Base()

	for code := uint32(0); code < v.codeMap.AlphabetSize(); code++ {
		idx := base ^ code
		if idx != parent && int(idx) < len(da.nodes) && da.nodes[idx].Check() == parent {
			children = append(children, idx)
		}
	}

	return children
}

func TestBuild(t *testing.T) {
	Convey("Build", t, func() {
		Convey("with no keys", func() {
			da := Build[byte](nil)

			Convey("should produce a single root node", func() {
				So(da.NumNodes(), ShouldEqual, 1)
				So(len(da.siblings), ShouldEqual, 1)
				So(da.nodes[0].Unused(), ShouldBeTrue)
			})
		})

		Convey("with a single empty key", func() {
			da := Build([][]byte{{}})

			Convey("the empty key should be matched at the root", func() {
				So(da.ExactMatch(nil).Unwrap(), ShouldEqual, 0)
			})
		})

		Convey("with a single single-label key", func() {
			da := Build(byteKeys("x"))

			So(da.ExactMatch([]byte("x")).Unwrap(), ShouldEqual, 0)
			So(da.ExactMatch([]byte("y")).IsNone(), ShouldBeTrue)
			So(da.ExactMatch([]byte("xx")).IsNone(), ShouldBeTrue)
			So(da.Probe([]byte("x")).HasChildren, ShouldBeFalse)
		})

		Convey("with unsorted keys", func() {
			So(func() { Build(byteKeys("b", "a")) }, ShouldPanic)
		})

		Convey("with duplicate keys", func() {
			So(func() { Build(byteKeys("a", "a")) }, ShouldPanic)
		})

		Convey("with a realistic key set", func() {
			keys := byteKeys("a", "ab", "abc", "b", "bc", "bcd")
			da := Build(keys)

			Convey("nodes and siblings stay parallel", func() {
				So(len(da.siblings), ShouldEqual, len(da.nodes))
			})

			Convey("the trailing slots are trimmed", func() {
				So(da.nodes[len(da.nodes)-1].Unused(), ShouldBeFalse)
			})

			Convey("no interior node keeps base 0", func() {
				for i := range da.nodes {
					n := &da.nodes[i]
					if n.Unused() || n.IsLeaf() {
						continue
					}

					if len(childrenOf(da, uint32(i))) > 0 {
						So(n.Base(), ShouldNotEqual, 0)
					}
				}
			})

			Convey("every child points back at its parent through XOR", func() {
				// Walk down from the root; for every reachable child,
				// base(check(child)) ^ code == child must hold.
				var walk func(parent uint32)

				walk = func(parent uint32) {
					base := da.nodes[parent].Base()

					for _, child := range childrenOf(da, parent) {
						code := base ^ child

						So(da.nodes[child].Check(), ShouldEqual, parent)
						So(da.nodes[da.nodes[child].Check()].Base()^code, ShouldEqual, child)

						if !da.nodes[child].IsLeaf() {
							walk(child)
						}
					}
				}

				walk(0)
			})

			Convey("sibling chains are acyclic and share one parent", func() {
				var walk func(parent uint32)

				walk = func(parent uint32) {
					children := childrenOf(da, parent)
					if len(children) == 0 {
						return
					}

					v := da.view()

					first, ok := v.firstChild(parent)
					So(ok, ShouldBeTrue)

					seen := map[uint32]bool{}

					for idx := first; idx != 0; idx = da.siblings[idx] {
						So(seen[idx], ShouldBeFalse)
						seen[idx] = true

						So(da.nodes[idx].Check(), ShouldEqual, parent)
					}

					So(len(seen), ShouldEqual, len(children))

					for _, child := range children {
						if !da.nodes[child].IsLeaf() {
							walk(child)
						}
					}
				}

				walk(0)
			})

			Convey("HasLeaf agrees with the terminal child", func() {
				for i := range da.nodes {
					n := &da.nodes[i]
					if n.Unused() || n.IsLeaf() {
						continue
					}

					terminal := n.Base()
					hasTerminal := int(terminal) < len(da.nodes) &&
						terminal != uint32(i) &&
						da.nodes[terminal].Check() == uint32(i) &&
						da.nodes[terminal].IsLeaf()

					So(n.HasLeaf(), ShouldEqual, hasTerminal)
				}
			})
		})

		Convey("with keys spanning the upper end of the rune alphabet", func() {
			keys := [][]rune{
				{0x10FFFE},
				{0x10FFFE, 0x10FFFF},
				{0x10FFFF},
			}
			da := Build(keys)

			for i, key := range keys {
				So(da.ExactMatch(key).Unwrap(), ShouldEqual, uint32(i))
			}
		})

		Convey("with a wide fan-out", func() {
			// 676 two-byte keys: 26 children at the root force base
			// probing deep into the slot array.
			var keys [][]byte

			for a := byte('a'); a <= 'z'; a++ {
				for b := byte('a'); b <= 'z'; b++ {
					keys = append(keys, []byte{a, b})
				}
			}

			da := Build(keys)

			for i, key := range keys {
				So(da.ExactMatch(key).Unwrap(), ShouldEqual, uint32(i))
			}
		})
	})
}
