package prompts

import "fmt"

// SceneContext names the location and character roster the generator is
// locked to for a given scene index. The mapping is hard-coded: it covers
// scenes 0-3 of the detective arc explicitly and falls back to a generic
// description beyond that.
type SceneContext struct {
	Location   string
	Characters string
	// LocationBlock is the full location-compliance block injected into
	// the user message. It spells out what belongs to the scene and what
	// must never leak in from other scenes.
	LocationBlock string
}

var sceneContexts = map[int]SceneContext{
	0: {
		Location:   "Nick Nolan's detective office in 1940s San Francisco",
		Characters: "Nick Nolan (you) and Vivian Sterling",
		LocationBlock: `LOCATION: Nick's detective office in San Francisco (SCENE 0)
- SETTING: Indoor office with desk, chairs, filing cabinets, desk lamp
- ATMOSPHERE: Gritty, urban, cigarette smoke, coffee stains
- CHARACTERS PRESENT: Only Nick and Vivian
- ABSOLUTELY NO: Fog, bay sounds, docks, water, pylons, foghorns, mansion elements, butlers, Thomas
- YOU ARE IN AN OFFICE - NOT at mansion, not at docks, not anywhere else`,
	},
	1: {
		Location:   "The uncle's mansion - elegant but somber",
		Characters: "Nick Nolan (you), Vivian Sterling, and Thomas the butler",
		LocationBlock: `MANSION EXPLORATION LOCK (SCENE 1 ONLY):
- YOU ARE INSIDE THE UNCLE'S MANSION - A WEALTHY INDOOR HOME
- MANSION ROOMS: Library, parlor, dining room, study, east wing, west wing, servants' quarters
- MANSION OBJECTS: Ashtrays with cigarettes, bookshelves, paintings, furniture, carpets, chandeliers
- CHARACTERS HERE: You (Nick), Vivian Sterling, Thomas the butler
- EXPLORATION STAYS IN MANSION: Looking at cigarettes = mansion cigarettes, going to east wing = mansion east wing
- ZERO DOCKS CONTENT: No fog, no bay, no ships, no pylons, no maritime anything
- IF USER EXPLORES MANSION, RESPONSE STAYS IN MANSION - DO NOT JUMP TO DOCKS SCENE
- MANSION ONLY - MANSION ONLY - MANSION ONLY`,
	},
	2: {
		Location:   "The foggy docks near San Francisco Bay",
		Characters: "Nick Nolan (you), Vivian Sterling, and Lefty Torrino",
		LocationBlock: `LOCATION: Foggy docks by San Francisco Bay (OUTDOOR)
- SETTING: Waterfront with fog, bay sounds, pylons, piers, ships
- ATMOSPHERE: Misty, maritime, salt air, water lapping, foghorns
- NO: Mansion elements, office furniture, indoor settings`,
	},
	3: {
		Location:   "Dusty import shop near the Barbary Coast",
		Characters: "Nick Nolan (you) and Lefty Torrino",
		LocationBlock: `LOCATION: Dusty import shop near Barbary Coast (INDOOR)
- SETTING: Commercial shop with shelves, imported goods, dusty atmosphere
- ATMOSPHERE: Commercial, cramped, merchandise displays
- NO: Fog, docks, bay sounds, mansion elements, office furniture`,
	},
}

// SceneContextFor returns the lock context for a scene index.
func SceneContextFor(sceneIndex int) SceneContext {
	if ctx, ok := sceneContexts[sceneIndex]; ok {
		return ctx
	}

	location := "Various locations in 1940s San Francisco"
	return SceneContext{
		Location:   location,
		Characters: "Nick Nolan (you) and other characters",
		LocationBlock: fmt.Sprintf(`LOCATION: %s
- Stay consistent with this specific location
- Do not mix elements from other scenes`, location),
	}
}
