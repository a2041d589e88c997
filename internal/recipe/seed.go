package recipe

import "brewflow/internal/domain"

// seed populates the source with builtin recipes. Quantities here are the
// recipe defaults; all numbers shown to the user come from the scaling
// engine, never from freeform text.
func (s *MemorySource) seed() {
	builtin := []*domain.RecipeSnapshot{
		{
			ID:          "v60-1cup",
			Name:        "V60 One Cup",
			Description: "Single-cup pour over: bloom, two pours, drawdown.",
			Method:      domain.MethodV60,
			Dose:        15,
			Yield:       250,
			WaterTempC:  93,
			GrindLabel:  "medium-fine",
			BloomRatio:  3.0,
			Tags:        []string{"pour over", "v60", "single"},
			Steps: []domain.StepTemplate{
				{
					Kind:  domain.StepPreparation,
					Label: "Rinse the filter and preheat the brewer",
				},
				{
					Kind:            domain.StepBloom,
					Label:           "Bloom",
					DurationSeconds: 45,
					HasWater:        true,
					Note:            "Make sure all grounds are saturated.",
				},
				{
					Kind:                 domain.StepPour,
					Label:                "First pour",
					TargetElapsedSeconds: 75,
					HasWater:             true,
					IsCumulative:         true,
					Note:                 "Pour in slow spirals from the center out.",
				},
				{
					Kind:                 domain.StepPour,
					Label:                "Second pour",
					TargetElapsedSeconds: 105,
					HasWater:             true,
					IsCumulative:         true,
				},
				{
					Kind:  domain.StepAgitate,
					Label: "Give the brewer a gentle swirl",
				},
				{
					Kind:            domain.StepWait,
					Label:           "Drawdown",
					DurationSeconds: 60,
				},
			},
		},
		{
			ID:          "v60-2cup",
			Name:        "V60 Two Cup",
			Description: "Larger pour over for sharing; same shape, slower pours.",
			Method:      domain.MethodV60,
			Dose:        22,
			Yield:       360,
			WaterTempC:  93,
			GrindLabel:  "medium",
			BloomRatio:  3.0,
			Tags:        []string{"pour over", "v60", "share"},
			Steps: []domain.StepTemplate{
				{
					Kind:  domain.StepPreparation,
					Label: "Rinse the filter and preheat the brewer",
				},
				{
					Kind:            domain.StepBloom,
					Label:           "Bloom",
					DurationSeconds: 45,
					HasWater:        true,
				},
				{
					Kind:                 domain.StepPour,
					Label:                "First pour",
					TargetElapsedSeconds: 90,
					HasWater:             true,
					IsCumulative:         true,
				},
				{
					Kind:                 domain.StepPour,
					Label:                "Second pour",
					TargetElapsedSeconds: 135,
					HasWater:             true,
					IsCumulative:         true,
				},
				{
					Kind:  domain.StepAgitate,
					Label: "Give the brewer a gentle swirl",
				},
				{
					Kind:            domain.StepWait,
					Label:           "Drawdown",
					DurationSeconds: 90,
				},
			},
		},
		{
			ID:          "aeropress-classic",
			Name:        "AeroPress Classic",
			Description: "Upright AeroPress: bloom, top up, steep, press.",
			Method:      domain.MethodAeroPress,
			Dose:        15,
			Yield:       220,
			WaterTempC:  85,
			GrindLabel:  "fine",
			BloomRatio:  2.0,
			Tags:        []string{"aeropress", "immersion"},
			Steps: []domain.StepTemplate{
				{
					Kind:  domain.StepPreparation,
					Label: "Insert a rinsed filter and set the brewer on the cup",
				},
				{
					Kind:            domain.StepBloom,
					Label:           "Bloom",
					DurationSeconds: 30,
					HasWater:        true,
				},
				{
					Kind:                 domain.StepPour,
					Label:                "Top up",
					TargetElapsedSeconds: 60,
					HasWater:             true,
					IsCumulative:         true,
				},
				{
					Kind:  domain.StepAgitate,
					Label: "Stir three times and fit the plunger",
				},
				{
					Kind:            domain.StepWait,
					Label:           "Steep",
					DurationSeconds: 60,
				},
				{
					Kind:  domain.StepAgitate,
					Label: "Press slowly until the plunger reaches the grounds",
				},
			},
		},
	}

	for _, r := range builtin {
		s.recipes[r.ID] = r
	}
	s.log.Debug("seeded %d builtin recipes", len(builtin))
}
