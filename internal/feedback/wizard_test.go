package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Submitter that remembers what it was sent.
type recorder struct {
	receipt  *Receipt
	err      error
	payloads []Payload
}

func (r *recorder) Submit(_ context.Context, p Payload) (*Receipt, error) {
	r.payloads = append(r.payloads, p)
	return r.receipt, r.err
}

func walkToInterest(t *testing.T, w *Wizard) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, w.Mutate(Patch{Rating: Int(5)}))
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.Mutate(Patch{ImprovementText: String("Great!")}))
	require.NoError(t, w.Advance(ctx))
	require.Equal(t, StepInterest, w.Step())
}

func TestNewWizardDefaults(t *testing.T) {
	w := NewWizard(nil)

	assert.Equal(t, StepRating, w.Step())
	assert.Equal(t, 0, w.Progress())
	assert.True(t, w.Record().IsZero())
	assert.False(t, w.Busy())
	assert.Empty(t, w.Err())
}

func TestAdvanceRequiresValidRating(t *testing.T) {
	ctx := context.Background()

	for _, bad := range []*int{nil, Int(0), Int(6)} {
		w := NewWizard(nil)
		if bad != nil {
			require.NoError(t, w.Mutate(Patch{Rating: bad}))
		}
		assert.False(t, w.CanAdvance())

		err := w.Advance(ctx)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, FieldRating, ve.Field)
		assert.Equal(t, StepRating, w.Step())
	}

	for n := MinRating; n <= MaxRating; n++ {
		w := NewWizard(nil)
		require.NoError(t, w.Mutate(Patch{Rating: Int(n)}))
		assert.True(t, w.CanAdvance(), "rating %d", n)
		require.NoError(t, w.Advance(ctx))
		assert.Equal(t, StepOpinion, w.Step())
		assert.Equal(t, 33, w.Progress())
	}
}

func TestAdvanceBlocksOversizeOpinion(t *testing.T) {
	ctx := context.Background()
	w := NewWizard(nil)
	require.NoError(t, w.Mutate(Patch{Rating: Int(3)}))
	require.NoError(t, w.Advance(ctx))

	require.NoError(t, w.Mutate(Patch{ImprovementText: String(strings.Repeat("a", 501))}))
	err := w.Advance(ctx)
	require.Error(t, err)
	assert.Equal(t, StepOpinion, w.Step())

	require.NoError(t, w.Mutate(Patch{ImprovementText: String(strings.Repeat("a", 500))}))
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, StepInterest, w.Step())
	assert.Equal(t, 67, w.Progress())
}

func TestRetreatIsBoundedAndSymmetric(t *testing.T) {
	ctx := context.Background()
	w := NewWizard(nil)

	require.NoError(t, w.Retreat())
	assert.Equal(t, StepRating, w.Step(), "retreat on the first step is a no-op")

	walkToInterest(t, w)
	require.NoError(t, w.Retreat())
	assert.Equal(t, StepOpinion, w.Step())
	assert.Equal(t, 33, w.Progress())

	require.NoError(t, w.Retreat())
	assert.Equal(t, StepRating, w.Step())
	assert.Equal(t, 0, w.Progress())

	// Navigating back and forth keeps the opinion verbatim.
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, "Great!", w.Record().ImprovementText)
}

func TestMutateOptOutClearsEmail(t *testing.T) {
	w := NewWizard(nil)
	require.NoError(t, w.Mutate(Patch{InterestedInResearch: Bool(true), Email: String("a@b.co")}))
	assert.Equal(t, "a@b.co", w.Record().Email)

	require.NoError(t, w.Mutate(Patch{InterestedInResearch: Bool(false)}))
	assert.Empty(t, w.Record().Email)
	assert.False(t, w.Record().Interested())
}

func TestRecordReturnsCopy(t *testing.T) {
	w := NewWizard(nil)
	require.NoError(t, w.Mutate(Patch{Rating: Int(4)}))

	r := w.Record()
	*r.Rating = 1

	assert.Equal(t, 4, w.Record().RatingValue())
}

func TestSubmitHappyPath(t *testing.T) {
	sub := &recorder{receipt: &Receipt{Status: 201, ID: "abc"}}
	w := NewWizard(sub)
	walkToInterest(t, w)
	require.NoError(t, w.Mutate(Patch{InterestedInResearch: Bool(true), Email: String("user@example.com")}))

	require.NoError(t, w.Advance(context.Background()))

	require.Len(t, sub.payloads, 1)
	assert.Equal(t, Payload{
		Rating:               5,
		ImprovementText:      "Great!",
		InterestedInResearch: true,
		Email:                "user@example.com",
	}, sub.payloads[0])
	assert.Equal(t, StepThanks, w.Step())
	assert.Equal(t, 100, w.Progress())
	assert.Equal(t, "abc", w.Receipt().ID)
	assert.False(t, w.Busy())
	assert.Empty(t, w.Err())
}

func TestSubmitAcceptsStatusOK(t *testing.T) {
	w := NewWizard(&recorder{receipt: &Receipt{Status: 200}})
	walkToInterest(t, w)

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StepThanks, w.Step())
}

func TestSubmitServerErrorKeepsRecord(t *testing.T) {
	sub := &recorder{err: &SubmitError{Status: 500, Message: "server down"}}
	w := NewWizard(sub)
	walkToInterest(t, w)
	require.NoError(t, w.Mutate(Patch{InterestedInResearch: Bool(true), Email: String("user@example.com")}))
	before := w.Record()

	err := w.Submit(context.Background())

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.Status)
	assert.Equal(t, StepInterest, w.Step())
	assert.Equal(t, "server down", w.Err())
	assert.Equal(t, before, w.Record())
	assert.False(t, w.Busy())

	// Retry succeeds without re-entering anything.
	sub.err = nil
	sub.receipt = &Receipt{Status: 201}
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, StepThanks, w.Step())
	assert.Empty(t, w.Err())
	require.Len(t, sub.payloads, 2)
	assert.Equal(t, sub.payloads[0], sub.payloads[1])
}

func TestSubmitUnexpectedStatus(t *testing.T) {
	w := NewWizard(&recorder{receipt: &Receipt{Status: 204}})
	walkToInterest(t, w)

	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, MsgUnexpectedResponse, w.Err())
	assert.Equal(t, StepInterest, w.Step())
}

func TestSubmitPlainErrorMessage(t *testing.T) {
	w := NewWizard(&recorder{err: errors.New("connection reset")})
	walkToInterest(t, w)

	require.Error(t, w.Submit(context.Background()))
	assert.Equal(t, "connection reset", w.Err())
}

func TestSubmitValidationSetsPageError(t *testing.T) {
	sub := &recorder{receipt: &Receipt{Status: 201}}
	w := NewWizard(sub)
	walkToInterest(t, w)
	require.NoError(t, w.Mutate(Patch{InterestedInResearch: Bool(true), Email: String("not-an-email")}))

	err := w.Submit(context.Background())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, MsgEmailInvalid, w.Err())
	assert.Empty(t, sub.payloads, "nothing is sent when validation fails")
	assert.Equal(t, StepInterest, w.Step())
}

func TestSubmitOnlyFromInterest(t *testing.T) {
	w := NewWizard(&recorder{receipt: &Receipt{Status: 201}})
	require.NoError(t, w.Mutate(Patch{Rating: Int(5)}))

	assert.ErrorIs(t, w.Submit(context.Background()), ErrNotAtInterest)
}

func TestSubmitPassesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "req-7")

	var seen any
	w := NewWizard(SubmitterFunc(func(ctx context.Context, p Payload) (*Receipt, error) {
		seen = ctx.Value(ctxKey{})
		return &Receipt{Status: 201, ID: "f-1"}, nil
	}))
	walkToInterest(t, w)

	require.NoError(t, w.Submit(ctx))
	assert.Equal(t, "req-7", seen)
	assert.Equal(t, "f-1", w.Receipt().ID)
}

func TestSubmitWithoutSubmitter(t *testing.T) {
	w := NewWizard(nil)
	walkToInterest(t, w)

	assert.ErrorIs(t, w.Submit(context.Background()), ErrNoSubmitter)
}

func TestBusyBlocksChanges(t *testing.T) {
	w := NewWizard(nil)
	walkToInterest(t, w)

	payload, err := w.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, 5, payload.Rating)
	assert.True(t, w.Busy())
	assert.False(t, w.CanAdvance())

	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, w.Advance(context.Background()), ErrBusy)
	assert.ErrorIs(t, w.Retreat(), ErrBusy)
	assert.ErrorIs(t, w.Mutate(Patch{Rating: Int(1)}), ErrBusy)
	assert.ErrorIs(t, w.Reset(), ErrBusy)

	require.NoError(t, w.FinishSubmit(&Receipt{Status: 201}, nil))
	assert.False(t, w.Busy())
	assert.Equal(t, StepThanks, w.Step())
}

func TestFinishSubmitWithoutBegin(t *testing.T) {
	w := NewWizard(nil)
	assert.ErrorIs(t, w.FinishSubmit(&Receipt{Status: 201}, nil), ErrNotSubmitting)
}

func TestThanksIsTerminalUntilReset(t *testing.T) {
	w := NewWizard(&recorder{receipt: &Receipt{Status: 201}})
	walkToInterest(t, w)
	require.NoError(t, w.Submit(context.Background()))

	require.NoError(t, w.Retreat())
	require.NoError(t, w.Advance(context.Background()))
	assert.Equal(t, StepThanks, w.Step())

	require.NoError(t, w.Reset())
	assert.Equal(t, StepRating, w.Step())
	assert.Equal(t, 0, w.Progress())
	assert.True(t, w.Record().IsZero())
	assert.Nil(t, w.Receipt())
}
