package multitrack

// TimeSelection is the time range edits apply to, in seconds.
type TimeSelection struct {
	T0, T1 float64
}

// Duration returns the selection length.
func (s TimeSelection) Duration() float64 { return s.T1 - s.T0 }

// Set assigns both ends, swapping them if given in reverse order.
func (s *TimeSelection) Set(t0, t1 float64) {
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	s.T0, s.T1 = t0, t1
}

// SelectionState implements list-style track selection: which tracks
// are selected lives on the tracks themselves, the state only remembers
// the last-picked track (by ID, so the reference survives list edits).
type SelectionState struct {
	lastPickedID int64 // 0 when no track has been picked
}

// LastPicked returns the last-picked track if it is still in the list.
func (s *SelectionState) LastPicked(list *TrackList) *WaveTrack {
	if s.lastPickedID == 0 {
		return nil
	}
	return list.ByID(s.lastPickedID)
}

// SelectTrack sets one track's selected flag. With updateLastPicked the
// track is remembered as the anchor for later shift-clicks.
func (s *SelectionState) SelectTrack(t *WaveTrack, selected, updateLastPicked bool) {
	t.SetSelected(selected)
	if updateLastPicked {
		s.lastPickedID = t.ID()
	}
}

// SelectNone deselects every track in the list.
func (s *SelectionState) SelectNone(list *TrackList) {
	for _, t := range list.Tracks() {
		t.SetSelected(false)
	}
}

// SelectRangeOfTracks selects the inclusive range between two tracks,
// the limits given in either order. Tracks not in the list are ignored.
func (s *SelectionState) SelectRangeOfTracks(list *TrackList, a, b *WaveTrack) {
	i, j := list.Index(a), list.Index(b)
	if i < 0 || j < 0 {
		return
	}
	if j < i {
		i, j = j, i
	}
	for k := i; k <= j; k++ {
		list.Track(k).SetSelected(true)
	}
}

// ChangeSelectionOnShiftClick implements the list-UI shift-click
// convention: the selection becomes the range between an anchor track
// and the clicked track. The anchor is the last-picked track; when none
// is live, the first selected track if the click is at or past it,
// otherwise the last selected track. The anchor stays picked so
// repeated shift-clicks keep extending from it.
func (s *SelectionState) ChangeSelectionOnShiftClick(list *TrackList, t *WaveTrack) {
	anchor := s.LastPicked(list)

	if anchor == nil {
		sel := list.Selected()
		if len(sel) > 0 {
			first, last := sel[0], sel[len(sel)-1]
			if list.Index(t) >= list.Index(first) {
				anchor = first
			} else {
				anchor = last
			}
		}
	}

	s.SelectNone(list)
	if anchor != nil {
		s.SelectRangeOfTracks(list, t, anchor)
		s.lastPickedID = anchor.ID()
	} else {
		s.SelectTrack(t, true, true)
	}
}

// HandleListSelection dispatches a click in a track list:
// ctrl toggles the clicked track, shift extends the selection from the
// anchor, a plain click selects only the clicked track and sets the
// time selection to its whole span.
func (s *SelectionState) HandleListSelection(list *TrackList, sel *TimeSelection,
	t *WaveTrack, shift, ctrl, syncLocked bool) {
	switch {
	case ctrl:
		s.SelectTrack(t, !t.Selected(), true)
	case shift && s.LastPicked(list) != nil:
		s.ChangeSelectionOnShiftClick(list, t)
	default:
		s.SelectNone(list)
		s.SelectTrack(t, true, true)
		SelectTrackLength(list, sel, t, syncLocked)
	}
}

// SelectTrackLength sets the time selection to the whole span of the
// track, or of its sync-lock group when syncLocked is set.
func SelectTrackLength(list *TrackList, sel *TimeSelection, t *WaveTrack, syncLocked bool) {
	if syncLocked {
		t0, t1 := list.GroupSpan(t)
		sel.Set(t0, t1)
		return
	}
	sel.Set(t.StartTime(), t.EndTime())
}

// SelectionChanger captures the selection state of a track list so a
// sequence of selection changes can be rolled back, for example when a
// dialog driving them is canceled. Rollback assumes no tracks were
// added or removed since the snapshot.
type SelectionChanger struct {
	state            *SelectionState
	list             *TrackList
	initialPicked    int64
	initialSelection []bool
	committed        bool
}

// NewSelectionChanger snapshots the current selection of every track
// and the last-picked anchor.
func NewSelectionChanger(state *SelectionState, list *TrackList) *SelectionChanger {
	snap := make([]bool, list.Len())
	for i, t := range list.Tracks() {
		snap[i] = t.Selected()
	}
	return &SelectionChanger{
		state:            state,
		list:             list,
		initialPicked:    state.lastPickedID,
		initialSelection: snap,
	}
}

// Commit keeps the changes made since the snapshot; Rollback becomes a
// no-op.
func (c *SelectionChanger) Commit() {
	c.committed = true
}

// Rollback restores the snapshot unless Commit was called. Safe to call
// more than once, typically via defer.
func (c *SelectionChanger) Rollback() {
	if c.committed {
		return
	}
	for i, t := range c.list.Tracks() {
		if i < len(c.initialSelection) {
			t.SetSelected(c.initialSelection[i])
		}
	}
	c.state.lastPickedID = c.initialPicked
	c.committed = true
}
