package history

import "context"

// Recorder combines the local store with an optional remote log.
// Appends fan out to both; the accuracy population prefers the remote
// (shared across all players) and falls back to local games when the
// remote is absent or unreachable.
type Recorder struct {
	local  *Store
	remote Sink
	source Source
}

// NewRecorder builds a Recorder. remote may be nil when no result-log
// endpoint is configured; it must implement both Sink and Source when set.
func NewRecorder(local *Store, remote *Client) *Recorder {
	r := &Recorder{local: local}
	if remote != nil {
		r.remote = remote
		r.source = remote
	}
	return r
}

// SaveStatus reports where a result landed. Either side failing is
// reported, not fatal: the quiz flow only suppresses its saved-confirmation.
type SaveStatus struct {
	Local     bool
	Remote    bool
	LocalErr  error
	RemoteErr error
}

// Shared reports whether the result reached the shared log.
func (st SaveStatus) Shared() bool { return st.Remote }

// Append stores the record locally and mirrors it to the remote log.
func (r *Recorder) Append(ctx context.Context, rec Record) SaveStatus {
	var st SaveStatus

	if r.local != nil {
		if err := r.local.Append(ctx, rec); err != nil {
			st.LocalErr = err
		} else {
			st.Local = true
		}
	}

	if r.remote != nil {
		if err := r.remote.Append(ctx, rec); err != nil {
			st.RemoteErr = err
		} else {
			st.Remote = true
		}
	}
	return st
}

// Accuracies returns the historical accuracy population for ranking.
// Remote first, local fallback; an empty slice with nil error means the
// log exists but has no games yet.
func (r *Recorder) Accuracies(ctx context.Context) ([]float64, error) {
	if r.source != nil {
		accs, err := r.source.Accuracies(ctx)
		if err == nil {
			return accs, nil
		}
		// Remote unreachable: degrade to the local population.
	}
	if r.local == nil {
		return nil, nil
	}
	return r.local.Accuracies(ctx)
}
