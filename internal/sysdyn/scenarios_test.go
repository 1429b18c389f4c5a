package sysdyn_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stockflow/internal/equations"
	"github.com/san-kum/stockflow/internal/sysdyn"
)

const tolerance = 1e-4

var _ = Describe("Model.Execute", func() {
	var (
		ctx context.Context
		m   *sysdyn.Model
	)

	BeforeEach(func() {
		ctx = context.Background()
		m = sysdyn.New("scenario")
	})

	Describe("reference scenarios", func() {
		It("drains one stock into another exponentially", func() {
			pop1 := m.CreateStock("pop1", 100)
			pop2 := m.CreateStock("pop2", 0)
			m.CreateFlow("exponential", equations.NewExponential(), pop1, pop2)

			Expect(m.Execute(ctx, 0, 100, 1)).To(Succeed())

			Expect(pop1.Value()).To(BeNumerically("~", 36.6032, tolerance))
			Expect(pop2.Value()).To(BeNumerically("~", 63.3968, tolerance))
		})

		It("grows the destination logistically", func() {
			p1 := m.CreateStock("p1", 100)
			p2 := m.CreateStock("p2", 10)
			m.CreateFlow("logistic", equations.NewLogistic(), p1, p2)

			Expect(m.Execute(ctx, 0, 100, 1)).To(Succeed())

			Expect(p1.Value()).To(BeNumerically("~", 88.2167, tolerance))
			Expect(p2.Value()).To(BeNumerically("~", 21.7833, tolerance))
		})

		It("settles a five stock network", func() {
			q1 := m.CreateStock("Q1", 100)
			q2 := m.CreateStock("Q2", 0)
			q3 := m.CreateStock("Q3", 100)
			q4 := m.CreateStock("Q4", 0)
			q5 := m.CreateStock("Q5", 0)

			exp := equations.NewExponential()
			m.CreateFlow("f", exp, q1, q2)
			m.CreateFlow("g", exp, q1, q3)
			m.CreateFlow("r", exp, q2, q5)
			m.CreateFlow("t", exp, q2, q3)
			m.CreateFlow("u", exp, q3, q4)
			m.CreateFlow("v", exp, q4, q1)

			Expect(m.Execute(ctx, 0, 100, 1)).To(Succeed())

			Expect(q1.Value()).To(BeNumerically("~", 31.8513, tolerance))
			Expect(q2.Value()).To(BeNumerically("~", 18.4003, tolerance))
			Expect(q3.Value()).To(BeNumerically("~", 77.1143, tolerance))
			Expect(q4.Value()).To(BeNumerically("~", 56.1728, tolerance))
			Expect(q5.Value()).To(BeNumerically("~", 16.4612, tolerance))
		})

		It("leaves stocks untouched when the only flow is disconnected", func() {
			a := m.CreateStock("a", 100)
			b := m.CreateStock("b", 0)
			m.CreateFlow("loose", equations.NewExponential(), nil, nil)

			Expect(m.Execute(ctx, 0, 100, 1)).To(Succeed())

			Expect(a.Value()).To(Equal(100.0))
			Expect(b.Value()).To(Equal(0.0))
		})

		It("performs no work for an empty interval", func() {
			a := m.CreateStock("a", 100)
			b := m.CreateStock("b", 0)
			m.CreateFlow("f", equations.NewExponential(), a, b)

			Expect(m.Execute(ctx, 0, 0, 1)).To(Succeed())

			Expect(m.Time()).To(Equal(0.0))
			Expect(m.Values()).To(Equal(sysdyn.State{100, 0}))
		})
	})

	Describe("invariants", func() {
		It("conserves the total across every step", func() {
			q := []*sysdyn.Stock{
				m.CreateStock("Q1", 100), m.CreateStock("Q2", 0), m.CreateStock("Q3", 100),
			}
			m.CreateFlow("a", equations.NewExponential(), q[0], q[1])
			m.CreateFlow("b", equations.NewLogistic(), q[1], q[2])
			m.CreateFlow("c", equations.Exponential{K: 0.05}, q[2], q[0])

			totals := make([]float64, 0)
			m.AddObserver(totalObserver(func(total float64) { totals = append(totals, total) }))

			Expect(m.Execute(ctx, 0, 200, 1)).To(Succeed())

			Expect(totals).To(HaveLen(200))
			for _, total := range totals {
				Expect(total).To(BeNumerically("~", 200.0, 1e-9))
			}
		})

		It("is independent of flow registration order", func() {
			run := func(order []int) sysdyn.State {
				model := sysdyn.New("order")
				s := []*sysdyn.Stock{
					model.CreateStock("Q1", 100), model.CreateStock("Q2", 0), model.CreateStock("Q3", 100),
					model.CreateStock("Q4", 0), model.CreateStock("Q5", 0),
				}
				edges := [][2]int{{0, 1}, {0, 2}, {1, 4}, {1, 2}, {2, 3}, {3, 0}}
				for _, i := range order {
					model.CreateFlow("f", equations.NewExponential(), s[edges[i][0]], s[edges[i][1]])
				}
				Expect(model.Execute(ctx, 0, 100, 1)).To(Succeed())
				return model.Values()
			}

			forward := run([]int{0, 1, 2, 3, 4, 5})
			reversed := run([]int{5, 4, 3, 2, 1, 0})
			shuffled := run([]int{3, 0, 5, 1, 4, 2})

			for i := range forward {
				Expect(reversed[i]).To(BeNumerically("~", forward[i], 1e-9))
				Expect(shuffled[i]).To(BeNumerically("~", forward[i], 1e-9))
			}
		})

		It("nets a self loop to zero whatever its rate", func() {
			a := m.CreateStock("a", 3)
			m.CreateFlow("self", sysdyn.EquationFunc(func(src, dst float64) float64 { return 1e6 * src }), a, a)

			Expect(m.Execute(ctx, 0, 10, 1)).To(Succeed())

			Expect(a.Value()).To(Equal(3.0))
		})

		It("propagates non-finite rates without failing", func() {
			a := m.CreateStock("a", 1)
			b := m.CreateStock("b", 10)
			m.CreateFlow("broken", equations.Logistic{K: 0.01, Capacity: 0}, a, b)

			Expect(m.Execute(ctx, 0, 1, 1)).To(Succeed())

			Expect(m.Values().IsValid()).To(BeFalse())
		})
	})
})

type totalObserver func(total float64)

func (f totalObserver) OnStep(t float64, values sysdyn.State) {
	f(values.Sum())
}
