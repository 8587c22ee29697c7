package multitrack

import "math"

// TrackList is the ordered set of tracks in a project, plus the
// project-level sync-lock setting. Tracks in the same sync group keep
// their relative alignment when sync-lock is enabled: edits that change
// the duration of one track's selection adjust its group siblings.
type TrackList struct {
	tracks     []*WaveTrack
	syncLocked bool
}

// NewTrackList creates a list containing the given tracks.
func NewTrackList(tracks ...*WaveTrack) *TrackList {
	return &TrackList{tracks: tracks}
}

// Len returns the number of tracks.
func (l *TrackList) Len() int { return len(l.tracks) }

// Track returns the track at index i.
func (l *TrackList) Track(i int) *WaveTrack { return l.tracks[i] }

// Tracks returns the underlying track slice in list order. The slice
// must not be modified by the caller.
func (l *TrackList) Tracks() []*WaveTrack { return l.tracks }

// Append adds tracks to the end of the list.
func (l *TrackList) Append(tracks ...*WaveTrack) {
	l.tracks = append(l.tracks, tracks...)
}

// Remove deletes the track at index i, preserving order.
func (l *TrackList) Remove(i int) {
	l.tracks = append(l.tracks[:i], l.tracks[i+1:]...)
}

// Index returns the position of the given track, or -1.
func (l *TrackList) Index(t *WaveTrack) int {
	return l.IndexByID(t.ID())
}

// IndexByID returns the position of the track with the given ID, or -1.
func (l *TrackList) IndexByID(id int64) int {
	for i, t := range l.tracks {
		if t.ID() == id {
			return i
		}
	}
	return -1
}

// ByID returns the track with the given ID, or nil.
func (l *TrackList) ByID(id int64) *WaveTrack {
	if i := l.IndexByID(id); i >= 0 {
		return l.tracks[i]
	}
	return nil
}

// Selected returns the selected tracks in list order.
func (l *TrackList) Selected() []*WaveTrack {
	var out []*WaveTrack
	for _, t := range l.tracks {
		if t.Selected() {
			out = append(out, t)
		}
	}
	return out
}

// SyncLocked reports whether sync-lock grouping is enabled.
func (l *TrackList) SyncLocked() bool { return l.syncLocked }

// SetSyncLocked enables or disables sync-lock grouping.
func (l *TrackList) SetSyncLocked(v bool) { l.syncLocked = v }

// SyncGroup returns the tracks belonging to the given sync group.
func (l *TrackList) SyncGroup(group int) []*WaveTrack {
	var out []*WaveTrack
	for _, t := range l.tracks {
		if t.SyncGroup() == group {
			out = append(out, t)
		}
	}
	return out
}

// IsSyncLockSelected reports whether the track is dragged along by the
// selection: sync-lock is enabled and some track in its group is
// selected (possibly itself).
func (l *TrackList) IsSyncLockSelected(t *WaveTrack) bool {
	if !l.syncLocked {
		return false
	}
	for _, g := range l.SyncGroup(t.SyncGroup()) {
		if g.Selected() {
			return true
		}
	}
	return false
}

// GroupSpan returns the union time span of the track's sync group.
func (l *TrackList) GroupSpan(t *WaveTrack) (t0, t1 float64) {
	group := l.SyncGroup(t.SyncGroup())
	if len(group) == 0 {
		return t.StartTime(), t.EndTime()
	}
	t0, t1 = math.Inf(1), math.Inf(-1)
	for _, g := range group {
		t0 = math.Min(t0, g.StartTime())
		t1 = math.Max(t1, g.EndTime())
	}
	return t0, t1
}
