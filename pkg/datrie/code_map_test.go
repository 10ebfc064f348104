package datrie

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/send/lexime-trie/pkg/untrust"
)

func TestCodeMapper(t *testing.T) {
	Convey("CodeMapper", t, func() {
		Convey("with no keys", func() {
			cm := buildCodeMapper[byte](nil)

			Convey("should contain only the terminal symbol", func() {
				So(cm.AlphabetSize(), ShouldEqual, 1)
				So(cm.Get('a'), ShouldEqual, 0)
			})
		})

		Convey("with only empty keys", func() {
			cm := buildCodeMapper([][]byte{{}})

			So(cm.AlphabetSize(), ShouldEqual, 1)
		})

		Convey("with frequency-skewed keys", func() {
			// 'a' appears 3 times, 'b' once.
			cm := buildCodeMapper([][]byte{{'a', 'a', 'a'}, {'b'}})

			Convey("the more frequent label should get the smaller code", func() {
				codeA, codeB := cm.Get('a'), cm.Get('b')

				So(codeA, ShouldNotEqual, 0)
				So(codeB, ShouldNotEqual, 0)
				So(codeA, ShouldBeLessThan, codeB)
			})
		})

		Convey("with tied frequencies", func() {
			cm := buildCodeMapper([][]byte{{'c'}, {'a'}, {'b'}})

			Convey("ties should break by ascending label value", func() {
				So(cm.Get('a'), ShouldEqual, 1)
				So(cm.Get('b'), ShouldEqual, 2)
				So(cm.Get('c'), ShouldEqual, 3)
			})
		})

		Convey("code 0 stays reserved for the terminal", func() {
			cm := buildCodeMapper([][]byte{{'x'}})

			So(cm.Get('x'), ShouldNotEqual, 0)
		})

		Convey("unmapped labels should return 0", func() {
			cm := buildCodeMapper([][]byte{{'a'}})

			So(cm.Get('z'), ShouldEqual, 0)
			So(cm.Get(0xFFFF), ShouldEqual, 0)
		})

		Convey("reverse should round-trip every mapped label", func() {
			cm := buildCodeMapper([][]byte{{'a', 'b', 'c'}, {'d', 'e'}})

			for _, label := range []byte{'a', 'b', 'c', 'd', 'e'} {
				code := cm.Get(uint32(label))

				So(code, ShouldNotEqual, 0)
				So(cm.Reverse(code), ShouldEqual, uint32(label))
			}
		})

		Convey("with rune labels", func() {
			cm := buildCodeMapper([][]rune{
				[]rune("あい"),
				[]rune("うえお"),
				[]rune("あお"),
			})

			codeA := cm.Get(uint32('あ'))
			codeU := cm.Get(uint32('う'))

			So(codeA, ShouldNotEqual, 0)
			So(codeU, ShouldNotEqual, 0)
			So(cm.Reverse(codeA), ShouldEqual, uint32('あ'))
			So(cm.Reverse(codeU), ShouldEqual, uint32('う'))
		})

		Convey("serialization", func() {
			cm := buildCodeMapper([][]byte{
				[]byte("hello"),
				[]byte("world"),
			})

			Convey("should round-trip through bytes", func() {
				b := cm.appendBytes(nil)

				cm2, err := codeMapperFromBytes(untrust.Input(b))

				So(err, ShouldBeNil)
				So(cm2.AlphabetSize(), ShouldEqual, cm.AlphabetSize())

				for _, label := range []byte("helowrd") {
					So(cm2.Get(uint32(label)), ShouldEqual, cm.Get(uint32(label)))
				}
			})

			Convey("should reject short input", func() {
				_, err := codeMapperFromBytes(make(untrust.Input, 8))

				So(err, ShouldEqual, ErrTruncatedData)
			})

			Convey("should reject truncated tables", func() {
				b := cm.appendBytes(nil)

				_, err := codeMapperFromBytes(untrust.Input(b[:len(b)-1]))

				So(err, ShouldEqual, ErrTruncatedData)
			})
		})
	})
}

func TestReverseLabel(t *testing.T) {
	Convey("reverseLabel", t, func() {
		cm := buildCodeMapper([][]byte{{'a'}})

		Convey("should map assigned codes back to labels", func() {
			l, ok := reverseLabel[byte](&cm, cm.Get('a'))

			So(ok, ShouldBeTrue)
			So(l, ShouldEqual, byte('a'))
		})

		Convey("should reject out-of-range codes", func() {
			_, ok := reverseLabel[byte](&cm, 999)

			So(ok, ShouldBeFalse)
		})

		Convey("should reject values that do not round-trip", func() {
			// A rune mapper whose label exceeds the byte space.
			rm := buildCodeMapper([][]rune{{'あ'}})

			_, ok := reverseLabel[byte](&rm, rm.Get(uint32('あ')))

			So(ok, ShouldBeFalse)
		})
	})
}
