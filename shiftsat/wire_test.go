package shiftsat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariableJSONOmitsZeroFieldsForBoolType(t *testing.T) {
	v := Variable{Type: VarBool, Name: "x"}
	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"bool","name":"x"}`, string(out))
}

func TestVariableJSONIntervalIncludesAllFields(t *testing.T) {
	v := Variable{Type: VarInterval, Name: "iv", Start: 10, End: 20, Size: 10, PresenceVar: "p"}
	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"interval","name":"iv","start":10,"end":20,"size":10,"presenceVar":"p"}`, string(out))
}

func TestConstraintJSONRoundTrip(t *testing.T) {
	c := Constraint{Type: ConstraintLinear, Terms: []Term{{Var: "x", Coeff: 2}}, Op: ComparatorLE, RHS: 5}
	out, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded Constraint
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, c, decoded)
}

func TestSolverRequestOmitsNilObjectiveAndOptions(t *testing.T) {
	req := SolverRequest{Variables: []Variable{{Type: VarBool, Name: "x"}}}
	out, err := json.Marshal(req)
	require.NoError(t, err)
	require.NotContains(t, string(out), `"objective"`)
	require.NotContains(t, string(out), `"options"`)
}

func TestSolverResponseUnmarshalsStatusAndValues(t *testing.T) {
	raw := `{"status":"OPTIMAL","values":{"x":1}}`
	var resp SolverResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	require.Equal(t, StatusOptimal, resp.Status)
	require.Equal(t, 1, resp.Values["x"])
}
