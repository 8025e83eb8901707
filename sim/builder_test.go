package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type factoryCall struct {
	degree int
	input  any
}

var _ = Describe("Builder", func() {
	var (
		calls   []factoryCall
		builder Builder
	)

	BeforeEach(func() {
		calls = nil
		builder = MakeBuilder().
			WithProcessorFactory(func(degree int, input any) (Processor, error) {
				calls = append(calls, factoryCall{degree, input})
				return &countingProcessor{haltAt: 1}, nil
			})
	})

	It("should create one processor per input with its degree", func() {
		n, err := builder.Build(
			[]any{"a", "b", "c", "d"},
			[]Edge{{0, 1}, {0, 2}, {1, 2}},
		)

		Expect(err).ToNot(HaveOccurred())
		Expect(n.NumProcessors()).To(Equal(4))
		Expect(calls).To(Equal([]factoryCall{
			{2, "a"}, {2, "b"}, {2, "c"}, {0, "d"},
		}))
		Expect(n.Degree(3)).To(Equal(0))
		Expect(n.RoundLimit()).To(Equal(DefaultRoundLimit))
	})

	It("should assign ports in edge order", func() {
		n, err := builder.Build(
			[]any{nil, nil, nil},
			[]Edge{{0, 1}, {2, 0}, {1, 2}},
		)

		Expect(err).ToNot(HaveOccurred())
		Expect(n.Links()).To(Equal([]Link{
			{A: PortBinding{0, 1}, B: PortBinding{1, 1}},
			{A: PortBinding{2, 1}, B: PortBinding{0, 2}},
			{A: PortBinding{1, 2}, B: PortBinding{2, 2}},
		}))
	})

	It("should give every processor the ports 1 to degree", func() {
		edges := []Edge{
			{0, 1}, {0, 2}, {0, 3}, {1, 2}, {3, 4}, {2, 4}, {4, 5},
		}
		n, err := builder.Build(make([]any, 7), edges)

		Expect(err).ToNot(HaveOccurred())
		Expect(n.Links()).To(HaveLen(len(edges)))

		for v := 0; v < n.NumProcessors(); v++ {
			ports := n.PortsOf(Vertex(v))
			Expect(ports).To(HaveLen(n.Degree(Vertex(v))))

			for i, p := range ports {
				Expect(p.Vertex).To(Equal(Vertex(v)))
				Expect(p.Port).To(Equal(Port(i + 1)))
			}
		}
	})

	It("should build a network without edges", func() {
		n, err := builder.Build([]any{nil, nil}, nil)

		Expect(err).ToNot(HaveOccurred())
		Expect(n.Links()).To(BeEmpty())
		Expect(n.String()).To(Equal("Network: 2 processors, 0 links"))
	})

	It("should reject self-loops", func() {
		_, err := builder.Build([]any{nil, nil}, []Edge{{1, 1}})

		Expect(errors.Is(err, ErrSelfLoop)).To(BeTrue())
		Expect(calls).To(BeEmpty())
	})

	It("should reject multiple edges between the same vertices", func() {
		_, err := builder.Build([]any{nil, nil}, []Edge{{0, 1}, {1, 0}})

		Expect(errors.Is(err, ErrDuplicateEdge)).To(BeTrue())
	})

	It("should reject edges to unknown vertices", func() {
		_, err := builder.Build([]any{nil, nil}, []Edge{{0, 2}})
		Expect(errors.Is(err, ErrUnknownVertex)).To(BeTrue())

		_, err = builder.Build([]any{nil, nil}, []Edge{{-1, 0}})
		Expect(errors.Is(err, ErrUnknownVertex)).To(BeTrue())
	})

	It("should return the error of the factory", func() {
		errBadInput := errors.New("bad input")
		builder = builder.WithProcessorFactory(
			func(int, any) (Processor, error) { return nil, errBadInput })

		_, err := builder.Build([]any{nil}, nil)

		Expect(errors.Is(err, errBadInput)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("processor 0"))
	})

	It("should reject nil processors", func() {
		builder = builder.WithProcessorFactory(
			func(int, any) (Processor, error) { return nil, nil })

		_, err := builder.Build([]any{nil}, nil)

		Expect(errors.Is(err, ErrNilProcessor)).To(BeTrue())
	})

	It("should panic if the factory is not set", func() {
		Expect(func() {
			_, _ = MakeBuilder().Build(nil, nil)
		}).To(Panic())
	})

	It("should panic if the round limit is not positive", func() {
		Expect(func() {
			_, _ = builder.WithRoundLimit(0).Build(nil, nil)
		}).To(Panic())
	})

	It("should not share hooks between builders", func() {
		base := builder.WithHook(NewRoundLogger(nil))
		b1 := base.WithHook(NewRoundLogger(nil))
		b2 := base.WithHook(NewRoundLogger(nil))

		n1, _ := b1.Build(nil, nil)
		n2, _ := b2.Build(nil, nil)

		Expect(n1.NumHooks()).To(Equal(2))
		Expect(n2.NumHooks()).To(Equal(2))
		Expect(n1.Hooks[1]).ToNot(BeIdenticalTo(n2.Hooks[1]))
	})
})

var _ = Describe("Inputs", func() {
	It("should convert typed inputs", func() {
		Expect(Inputs([]int{1, 2})).To(Equal([]any{1, 2}))
	})
})
