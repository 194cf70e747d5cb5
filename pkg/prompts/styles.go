package prompts

import "strings"

// NoirStylePrompt is the style guide for the detective story. The
// character details and naming rules here are generation constraints, not
// documentation; the generator is held to them on every call.
const NoirStylePrompt = `
You are writing a 1940s noir detective story in the style of Dashiell Hammett and Raymond Chandler.

CRITICAL PERIOD ACCURACY (1940s):
- NO modern technology: no computers, cell phones, modern cars, credit cards, or anything invented after 1940
- Use period-appropriate items: rotary phones, telegrams, typewriters, fountain pens, cash transactions
- Transportation: 1930s-1940s automobiles, streetcars, trains, walking
- Communication: telephone calls, letters, telegrams, face-to-face meetings
- Lighting: incandescent bulbs, desk lamps, street lamps, neon signs
- Clothing: suits, fedoras, overcoats, dresses appropriate to the era
- Weapons: revolvers, automatics common to the 1940s (no modern firearms)

CHARACTER DESCRIPTIONS (USE THESE EXACT DETAILS - DO NOT INVENT NEW ONES):
- Nick Nolan (you): Tall, dark, fit, and ruggedly good looking. The kind of man women stare at without him even noticing. Hard-boiled detective with integrity.
- Vivian Sterling: Gray eyes, honey-colored hair. Tall for a woman but a head shorter than Nick. Wears faint lilac-scented perfume. Only jewelry is a sapphire ring on her right hand. Elegant, refined, calm, and composed. Speaks with quiet dignity and grace, never bitter or hard-edged. She doesn't seem to notice that she is being noticed.
- Thomas: The butler at the uncle's mansion. Nervous disposition.
- Lefty Torrino: Scarred smuggler who wears a fedora.

NAMING CONSISTENCY (ABSOLUTELY CRITICAL - NEVER VIOLATE):
- Vivian Sterling ALWAYS calls him "Nicholas" - NEVER "Nick"
- ALL other characters call him "Nick" - NEVER "Nicholas"
- The butler is ALWAYS named "Thomas" - never any other name
- The statue is ALWAYS "the Algerian Eagle" - never "Maltese Falcon" or any other name
- Vivian's relative is ALWAYS "uncle" - never father, brother, or any other relation
- This naming pattern is a key character trait and plot element

CONSISTENCY ENFORCEMENT:
- If you mention the statue, it MUST be called "the Algerian Eagle"
- If you mention the butler, he MUST be called "Thomas"
- If Vivian speaks to Nick, she MUST say "Nicholas"
- The uncle's death and the paperweight connection are FIXED story elements
- DO NOT invent new names, relationships, or backstories that contradict established facts

STYLE REQUIREMENTS:
- Write in second person ("you")
- Use atmospheric, gritty descriptions with fog, rain, shadows
- Include authentic 1940s language and slang (dame, gumshoe, copper, etc.)
- NEVER mention character details more than once per scene
- DO NOT invent new physical details, jewelry, scents, or eye colors - use only what's specified above
- Other characters use period-appropriate street language
- Build tension and suspense
- Include sensory details (sounds, smells, textures)
- Keep the noir atmosphere dark but not hopeless

TONE: Sophisticated, atmospheric, morally complex but ultimately honorable
LENGTH: 2-3 paragraphs with rich detail
`

// MelodramaStylePrompt is the style guide for the silent-movie serial.
const MelodramaStylePrompt = `
You are writing a classic silent movie melodrama in the style of early 1900s adventure serials.

CRITICAL PERIOD ACCURACY (1900-1910):
- NO modern technology: no automobiles (horse-drawn carriages only), no electric lights in rural areas, no modern appliances
- Use period-appropriate items: oil lamps, candles, wood stoves, iceboxes, hand-pumped wells
- Transportation: horses, horse-drawn carriages, trains, walking, bicycles
- Communication: handwritten letters, telegrams, face-to-face meetings, town criers
- Lighting: oil lamps, candles, gas lights in cities, fireplaces
- Clothing: long dresses, bustles, bonnets, top hats, waistcoats, pocket watches
- Weapons: single-shot rifles, revolvers, dynamite (no modern explosives or firearms)
- Rural setting: farms, mills, small towns, dirt roads, wooden buildings

STYLE REQUIREMENTS:
- Write in second person ("you")
- Use dramatic, over-the-top language with exclamation points
- Include classic melodrama elements: dastardly villains, heroic rescues, dramatic reversals
- Penelope Pureheart is sweet, innocent, but surprisingly resourceful
- Snidely Whiplash is a mustache-twirling villain with grandiose schemes
- Use period-appropriate language and situations (no modern slang)
- Build excitement and suspense
- Include vivid action descriptions
- Keep the tone adventurous and wholesome despite the perils

TONE: Melodramatic, exciting, wholesome adventure with clear heroes and villains
LENGTH: 2-3 paragraphs with vivid action
`

// StyleFor selects a style guide purely by story title substring. New
// genres are added by adding match rules here, not by configuration.
func StyleFor(title string) string {
	if strings.Contains(title, "Nick Nolan Mystery") {
		return NoirStylePrompt
	}
	if strings.Contains(title, "Silent Movie") {
		return MelodramaStylePrompt
	}
	return ""
}
