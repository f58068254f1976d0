package state

// Bridge pushes confirmed apply/withdraw interactions from the
// application store into the project store, so hasApplied stays
// consistent across the two without a shared reference. It fires at
// most once per distinct interaction value; a repeat of the same value
// is a no-op, and RecordInteraction itself tolerates replays.
type Bridge struct {
	last *Interaction
}

// Sync propagates the application store's last interaction, if it is
// new, into the project store.
func (b *Bridge) Sync(apps *ApplicationStore, projects *ProjectStore) {
	cur := apps.LastInteraction
	if cur == nil {
		return
	}
	if b.last != nil && *b.last == *cur {
		return
	}
	copied := *cur
	b.last = &copied
	projects.RecordInteraction(cur.ProjectID, cur.Kind, cur.Active)
}
