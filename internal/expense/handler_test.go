package expense_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/finito-app/expense-tracker/internal"
	"github.com/finito-app/expense-tracker/internal/expense"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler", func() {
	var (
		repo     *memoryRepository
		router   *chi.Mux
		recorder *httptest.ResponseRecorder
	)

	seedExpense := func(groupID string) *expense.ExpenseResponse {
		body := map[string]interface{}{
			"group_id":     groupID,
			"amount_cents": 2500,
			"category":     "groceries",
			"type_expense": "cash",
			"spent_by":     "Ann",
		}
		jsonBody, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest("POST", "/expenses", bytes.NewBuffer(jsonBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		var created expense.ExpenseResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		return &created
	}

	BeforeEach(func() {
		repo = newMemoryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := expense.NewHandler(expense.NewController(repo, logger))

		router = chi.NewRouter()
		router.Route("/expenses", func(r chi.Router) {
			r.Post("/", handler.CreateExpense)
			r.Get("/{id}", handler.GetAllExpenses)
			r.Get("/{id}/analytics", handler.GetAnalytics)
			r.Get("/{id}/details", handler.GetExpense)
			r.Patch("/{id}", handler.UpdateExpense)
			r.Delete("/{id}", handler.DeleteExpense)
			r.Post("/{id}/restore", handler.RestoreExpense)
			r.Delete("/{id}/purge", handler.PurgeExpense)
		})
		router.Get("/categories", handler.GetCategories)

		recorder = httptest.NewRecorder()
	})

	Describe("POST /expenses", func() {
		It("creates an expense and returns 201", func() {
			date := time.Date(2026, 2, 14, 20, 30, 0, 0, time.UTC)
			body, _ := json.Marshal(map[string]interface{}{
				"group_id":     "group-1",
				"amount_cents": 2500,
				"category":     "groceries",
				"type_expense": "cash",
				"spent_by":     "Ann",
				"date":         date,
				"note":         "weekly shop",
			})
			req := httptest.NewRequest("POST", "/expenses", bytes.NewBuffer(body))

			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusCreated))

			var resp expense.ExpenseResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.ID).NotTo(BeEmpty())
			Expect(resp.AmountCents).To(Equal(int64(2500)))
			Expect(resp.Date).To(Equal(date))
		})

		It("returns 400 for a malformed body", func() {
			req := httptest.NewRequest("POST", "/expenses", bytes.NewBufferString("not json"))

			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for an unknown category label", func() {
			body, _ := json.Marshal(map[string]interface{}{
				"group_id":     "group-1",
				"amount_cents": 2500,
				"category":     "food",
				"type_expense": "cash",
				"spent_by":     "Ann",
			})
			req := httptest.NewRequest("POST", "/expenses", bytes.NewBuffer(body))

			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 when the amount exceeds the cap", func() {
			body, _ := json.Marshal(map[string]interface{}{
				"group_id":     "group-1",
				"amount_cents": 10000000,
				"category":     "groceries",
				"type_expense": "cash",
				"spent_by":     "Ann",
			})
			req := httptest.NewRequest("POST", "/expenses", bytes.NewBuffer(body))

			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /expenses/{group_id}", func() {
		It("returns the group's expenses", func() {
			created := seedExpense("group-1")

			req := httptest.NewRequest("GET", "/expenses/group-1", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var page []expense.ExpenseResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &page)).To(Succeed())
			Expect(page).To(HaveLen(1))
			Expect(page[0].ID).To(Equal(created.ID))
		})

		It("returns an empty array for a group with no expenses", func() {
			req := httptest.NewRequest("GET", "/expenses/empty-group", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`[]`))
		})
	})

	Describe("GET /expenses/{expense_id}/details", func() {
		It("returns the expense", func() {
			created := seedExpense("group-1")

			req := httptest.NewRequest("GET", "/expenses/"+created.ID+"/details", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp expense.ExpenseResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.ID).To(Equal(created.ID))
		})

		It("returns 404 for an unknown id", func() {
			req := httptest.NewRequest("GET", "/expenses/no-such-id/details", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("PATCH /expenses/{expense_id}", func() {
		It("applies a partial update", func() {
			created := seedExpense("group-1")

			body, _ := json.Marshal(map[string]interface{}{"note": "shared dinner"})
			req := httptest.NewRequest("PATCH", "/expenses/"+created.ID, bytes.NewBuffer(body))
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp expense.ExpenseResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.AmountCents).To(Equal(int64(2500)))
			Expect(resp.Note).NotTo(BeNil())
			Expect(*resp.Note).To(Equal("shared dinner"))
		})

		It("returns 404 for an unknown id", func() {
			body, _ := json.Marshal(map[string]interface{}{"amount_cents": 100})
			req := httptest.NewRequest("PATCH", "/expenses/no-such-id", bytes.NewBuffer(body))
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /expenses/{expense_id}", func() {
		It("soft-deletes and returns 204", func() {
			created := seedExpense("group-1")

			req := httptest.NewRequest("DELETE", "/expenses/"+created.ID, nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))

			check := httptest.NewRecorder()
			router.ServeHTTP(check, httptest.NewRequest("GET", "/expenses/"+created.ID+"/details", nil))
			Expect(check.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 404 on the second delete", func() {
			created := seedExpense("group-1")

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/expenses/"+created.ID, nil))

			req := httptest.NewRequest("DELETE", "/expenses/"+created.ID, nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /expenses/{group_id}/analytics", func() {
		It("returns an empty array for a group with no expenses", func() {
			req := httptest.NewRequest("GET", "/expenses/empty-group/analytics", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(MatchJSON(`[]`))
		})

		It("projects amounts and payment types", func() {
			seedExpense("group-1")

			req := httptest.NewRequest("GET", "/expenses/group-1/analytics", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var data []expense.AmountAndType
			Expect(json.Unmarshal(recorder.Body.Bytes(), &data)).To(Succeed())
			Expect(data).To(HaveLen(1))
			Expect(data[0].AmountCents).To(Equal(int64(2500)))
			Expect(data[0].TypeExpense).To(Equal(expense.TypeCash))
		})
	})

	Describe("POST /expenses/{expense_id}/restore", func() {
		It("restores a deleted expense", func() {
			created := seedExpense("group-1")
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/expenses/"+created.ID, nil))

			req := httptest.NewRequest("POST", "/expenses/"+created.ID+"/restore", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			check := httptest.NewRecorder()
			router.ServeHTTP(check, httptest.NewRequest("GET", "/expenses/"+created.ID+"/details", nil))
			Expect(check.Code).To(Equal(http.StatusOK))
		})

		It("returns 404 when the expense is not deleted", func() {
			created := seedExpense("group-1")

			req := httptest.NewRequest("POST", "/expenses/"+created.ID+"/restore", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("DELETE /expenses/{expense_id}/purge", func() {
		It("permanently removes the expense", func() {
			created := seedExpense("group-1")

			req := httptest.NewRequest("DELETE", "/expenses/"+created.ID+"/purge", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNoContent))

			restore := httptest.NewRecorder()
			router.ServeHTTP(restore, httptest.NewRequest("POST", "/expenses/"+created.ID+"/restore", nil))
			Expect(restore.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /categories", func() {
		It("lists the fixed label set", func() {
			req := httptest.NewRequest("GET", "/categories", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp struct {
				Categories []string `json:"categories"`
			}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Categories).To(HaveLen(21))
			Expect(resp.Categories).To(ContainElement("personal_care"))
		})
	})

	Describe("storage failures", func() {
		It("surface as 500 with a structured error body", func() {
			repo.err = internal.NewStorageError("connection lost", nil)

			req := httptest.NewRequest("GET", "/expenses/group-1", nil)
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
