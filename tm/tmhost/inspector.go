package tmhost

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmdriver"
)

// Inspector serves read-only JSON views of a Driver's state over HTTP,
// for cmd/tmcorectl's serve command and for manual debugging. It never
// mutates the Driver; all writes to it happen through Driver.Process.
type Inspector struct {
	driver *tmdriver.Driver
}

// NewInspector returns an Inspector over driver.
func NewInspector(driver *tmdriver.Driver) *Inspector {
	return &Inspector{driver: driver}
}

// Handler builds the gorilla/mux router serving this Inspector's
// endpoints.
func (ins *Inspector) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/state", ins.handleState).Methods(http.MethodGet)
	r.HandleFunc("/evidence", ins.handleEvidence).Methods(http.MethodGet)
	return r
}

type stateView struct {
	Height   tmconsensus.Height      `json:"height"`
	Round    tmconsensus.Round       `json:"round"`
	Step     tmconsensus.Step        `json:"step"`
	Decided  bool                    `json:"decided"`
	Locked   *tmconsensus.RoundValue `json:"locked,omitempty"`
	Valid    *tmconsensus.RoundValue `json:"valid,omitempty"`
	Decision *tmconsensus.Value     `json:"decision,omitempty"`
}

func (ins *Inspector) handleState(w http.ResponseWriter, r *http.Request) {
	state := ins.driver.State()
	view := stateView{
		Height:   ins.driver.Height(),
		Round:    ins.driver.Round(),
		Step:     state.Step,
		Decided:  ins.driver.Decided(),
		Locked:   state.Locked,
		Valid:    state.Valid,
		Decision: state.Decision,
	}
	writeJSON(w, view)
}

type evidenceView struct {
	VoteEquivocations     int `json:"vote_equivocations"`
	ProposalEquivocations int `json:"proposal_equivocations"`
}

func (ins *Inspector) handleEvidence(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, evidenceView{
		VoteEquivocations:     len(ins.driver.VoteEvidence()),
		ProposalEquivocations: len(ins.driver.ProposalEvidence()),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
