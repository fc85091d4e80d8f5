package model

// Default returns the built-in catalog the service boots with. The manager's
// feed overlays these entries; categories it does not mention stay as-is.
func Default() Catalog {
	return Catalog{
		Version: 1,
		Order:   []string{"bedroom", "washroom", "kitchen"},
		Categories: map[string]Entry{
			"bedroom": {
				Tasks: []Task{
					{ID: "strip-linens", Label: "Strip linens", Category: "bedroom", Icon: "bed"},
					{ID: "make-bed", Label: "Make bed", Category: "bedroom", Icon: "bed"},
					{ID: "dust-surfaces", Label: "Dust surfaces", Category: "bedroom", Icon: "sparkles"},
					{ID: "vacuum-floor", Label: "Vacuum floor", Category: "bedroom", Icon: "wind"},
				},
			},
			"washroom": {
				Tasks: []Task{
					{ID: "restock-towels", Label: "Restock towels", Category: "washroom", Icon: "layers"},
					{ID: "scrub-shower", Label: "Scrub shower", Category: "washroom", Icon: "droplet"},
					{ID: "clean-toilet", Label: "Clean toilet", Category: "washroom", Icon: "droplet"},
					{ID: "mop-floor", Label: "Mop floor", Category: "washroom", Icon: "droplet"},
				},
			},
			"kitchen": {
				RoomTypes: []string{"suite", "apartment"},
				Tasks: []Task{
					{ID: "wash-dishes", Label: "Wash dishes", Category: "kitchen", Icon: "coffee"},
					{ID: "wipe-counters", Label: "Wipe counters", Category: "kitchen", Icon: "square"},
					{ID: "empty-fridge", Label: "Empty fridge", Category: "kitchen", Icon: "box"},
					{ID: "mop-floor-2", Label: "Mop floor", Category: "kitchen", Icon: "droplet"},
				},
			},
		},
	}
}
