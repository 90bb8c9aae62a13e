package projects

import "github.com/gcet-osf/forumctl/pkg/forum"

func (v *ListView) Seed(items []forum.Project)                 { v.items = items }
func (v *ListView) SeedPending(pending []forum.PendingProject) { v.pending = pending }
