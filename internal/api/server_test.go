package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/logging"
)

const baseInputsJSON = `{
	"current_age": 30,
	"retirement_age": 60,
	"current_savings": 50000,
	"monthly_contribution": 2000,
	"annual_return": 8,
	"inflation_rate": 2,
	"contribution_increase_rate": 3,
	"current_yearly_spending": 40000,
	"tax_rate": 20
}`

func solveBody(variable string, min, max float64, inputs string) string {
	body, err := json.Marshal(map[string]any{
		"variable_to_solve": variable,
		"search_min":        min,
		"search_max":        max,
		"inputs":            json.RawMessage(inputs),
	})
	Expect(err).NotTo(HaveOccurred())
	return string(body)
}

func withTax(rate string) string {
	return `{"current_age": 30, "retirement_age": 60, "current_savings": 50000, "tax_rate": ` + rate + `}`
}

var _ = Describe("Server", func() {
	var handler http.Handler

	BeforeEach(func() {
		engine := calculation.NewCalculationEngine()
		engine.SetLogger(logging.NewTestLogger())
		handler = NewServer(engine).Handler()
	})

	do := func(method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		var decoded map[string]any
		if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
			Expect(json.Unmarshal(rec.Body.Bytes(), &decoded)).To(Succeed())
		}
		return rec, decoded
	}

	Describe("POST /calculate", func() {
		It("returns the rounded summary as a flat object", func() {
			rec, body := do(http.MethodPost, "/calculate", baseInputsJSON)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(body).To(HaveKeyWithValue("years_to_grow", 30.0))
			Expect(body).To(HaveKeyWithValue("total_savings", 4570823.39))
			Expect(body).To(HaveKeyWithValue("real_total_savings", 2523418.53))
			Expect(body).To(HaveKeyWithValue("monthly_income_in_retirement", 15236.08))
			Expect(body).To(HaveKeyWithValue("after_tax_monthly_income", 12188.86))
			Expect(body).To(HaveKeyWithValue("future_yearly_spending", 72454.46))
		})

		It("rejects non-numeric fields with 400", func() {
			rec, body := do(http.MethodPost, "/calculate", `{"current_age": "thirty"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(body["error"]).To(ContainSubstring("invalid request body"))
		})

		It("rejects malformed JSON with 400", func() {
			rec, _ := do(http.MethodPost, "/calculate", `{"current_age": 30`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("summarizes a tax rate of 100 as zero after-tax income", func() {
			rec, body := do(http.MethodPost, "/calculate", withTax("100"))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(body).To(HaveKeyWithValue("after_tax_monthly_income", 0.0))
			Expect(body).To(HaveKeyWithValue("monthly_income_in_retirement", 166.67))
		})

		It("summarizes a tax rate above 100 as negative after-tax income", func() {
			rec, body := do(http.MethodPost, "/calculate", withTax("150"))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(body["after_tax_monthly_income"]).To(BeNumerically("<", 0))
		})

		It("accepts unreasonable but computable inputs", func() {
			rec, _ := do(http.MethodPost, "/calculate", `{"current_age": 70, "retirement_age": 60, "annual_return": -5}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("POST /projection", func() {
		It("returns one record per age through 100", func() {
			rec, _ := do(http.MethodPost, "/projection", baseInputsJSON)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var points []struct {
				Age      int     `json:"age"`
				NetWorth float64 `json:"net_worth"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &points)).To(Succeed())
			Expect(points).To(HaveLen(71))
			Expect(points[0].Age).To(Equal(30))
			Expect(points[0].NetWorth).To(Equal(50000.0))
			Expect(points[1].NetWorth).To(Equal(79215.82))
			Expect(points[30].Age).To(Equal(60))
			Expect(points[30].NetWorth).To(Equal(4570823.38))
			Expect(points[70].Age).To(Equal(100))
		})

		It("rejects a tax rate of 100 or more with 422", func() {
			rec, _ := do(http.MethodPost, "/projection", withTax("150"))
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("POST /solve", func() {
		It("finds the lowest solvent monthly contribution", func() {
			rec, body := do(http.MethodPost, "/solve", solveBody("monthly_contribution", 0, 20000, baseInputsJSON))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(body).To(HaveKeyWithValue("found", true))
			Expect(body).To(HaveKeyWithValue("value", 397.94921875))
			Expect(body).To(HaveKeyWithValue("iterations", 20.0))
			Expect(body).To(HaveKeyWithValue("direction", "find_lowest"))
		})

		It("finds the highest solvent spending", func() {
			rec, body := do(http.MethodPost, "/solve", solveBody("current_yearly_spending", 0, 1e6, baseInputsJSON))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(body["value"]).To(BeNumerically("~", 135687.828, 0.01))
			Expect(body).To(HaveKeyWithValue("direction", "find_highest"))
		})

		It("floors integer variables when applying the solution", func() {
			rec, body := do(http.MethodPost, "/solve", solveBody("retirement_age", 30, 100, baseInputsJSON))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(body["value"]).To(BeNumerically("~", 46.00003, 0.0001))
			Expect(body).To(HaveKeyWithValue("applied_value", 46.0))
		})

		It("returns a null value when nothing in the range is solvent", func() {
			inputs := `{"current_age": 30, "retirement_age": 60, "current_savings": 50000, "monthly_contribution": 2000,
				"annual_return": 8, "inflation_rate": 2, "contribution_increase_rate": 3,
				"current_yearly_spending": 500000, "tax_rate": 20}`
			rec, body := do(http.MethodPost, "/solve", solveBody("monthly_contribution", 0, 1e-6, inputs))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(body).To(HaveKey("value"))
			Expect(body["value"]).To(BeNil())
			Expect(body).To(HaveKeyWithValue("found", false))
		})

		It("rejects an unknown variable with 400", func() {
			rec, body := do(http.MethodPost, "/solve", solveBody("salary", 0, 10, baseInputsJSON))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(body["error"]).To(ContainSubstring("unknown variable"))
		})

		It("rejects inverted bounds with 400", func() {
			rec, _ := do(http.MethodPost, "/solve", solveBody("monthly_contribution", 10, 0, baseInputsJSON))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects invalid base inputs with 422", func() {
			rec, _ := do(http.MethodPost, "/solve", solveBody("monthly_contribution", 0, 10, withTax("100")))
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("GET /variables", func() {
		It("lists every solvable input", func() {
			req := httptest.NewRequest(http.MethodGet, "/variables", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var vars []VariableInfo
			Expect(json.Unmarshal(rec.Body.Bytes(), &vars)).To(Succeed())
			Expect(vars).To(HaveLen(9))
			Expect(vars).To(ContainElement(HaveField("Name", "current_yearly_spending")))
			for _, v := range vars {
				if v.Name == "current_yearly_spending" {
					Expect(v.Direction).To(Equal("find_highest"))
				}
			}
		})
	})

	Describe("routing", func() {
		It("answers health checks", func() {
			rec, body := do(http.MethodGet, "/healthz", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(body).To(HaveKeyWithValue("status", "ok"))
		})

		It("rejects the wrong method", func() {
			rec, _ := do(http.MethodGet, "/calculate", "")
			Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
		})

		It("answers CORS preflight requests", func() {
			rec, _ := do(http.MethodOptions, "/calculate", "")
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})

	It("serves concurrent requests independently", func() {
		var wg sync.WaitGroup
		codes := make([]int, 16)
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()
				body := baseInputsJSON
				if i%2 == 1 {
					body = withTax("100")
				}
				req := httptest.NewRequest(http.MethodPost, "/projection", bytes.NewBufferString(body))
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)
				codes[i] = rec.Code
			}(i)
		}
		wg.Wait()
		for i, code := range codes {
			if i%2 == 1 {
				Expect(code).To(Equal(http.StatusUnprocessableEntity))
			} else {
				Expect(code).To(Equal(http.StatusOK))
			}
		}
	})
})
