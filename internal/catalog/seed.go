// Copyright (c) 2026 PressArt. All rights reserved.

package catalog

// Seed returns the canonical category table.
//
// The filenames are the ones uploaded to the CDNs; they are not derived from
// the category ids and must not be "corrected" without re-uploading images.
// A fresh slice is returned on every call so callers cannot mutate the seed.
func Seed() []Category {
	return []Category{
		{
			ID:          "among-us",
			Name:        "Among Us",
			Description: "Creative Among Us themed digital artworks",
			PathPrefix:  "among-us/",
			CodePrefix:  "AMONG",
			ItemCount:   60,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "AMONG_", Width: 2},
		},
		{
			ID:          "artes-psicodelicas",
			Name:        "Artes Psicodélicas",
			Description: "Psychedelic art collections with vibrant patterns",
			PathPrefix:  "psicodelicas/",
			CodePrefix:  "PSICODELICAS",
			ItemCount:   60,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "KIT_PSICODELICO_", Width: 2},
		},
		{
			ID:          "collage",
			Name:        "Collage",
			Description: "Mixed media collage artworks",
			PathPrefix:  "collage/",
			CodePrefix:  "COLLAGE",
			ItemCount:   41,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "COLAGEM_", Width: 2},
		},
		{
			ID:          "dc-heroes",
			Name:        "DC Heroes",
			Description: "DC Comics superhero digital art collection",
			PathPrefix:  "dc-heroes/",
			CodePrefix:  "HEROES",
			ItemCount:   99,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "HEROIS_", Width: 3},
		},
		{
			ID:          "digital-illustration",
			Name:        "Digital Illustration",
			Description: "Modern digital illustrations and artwork",
			PathPrefix:  "digital-illustration/",
			CodePrefix:  "DIGITAL",
			ItemCount:   155,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "ID_", Width: 3},
		},
		{
			ID:          "doodle-art",
			Name:        "Doodle Art",
			Description: "Hand-drawn doodle style artwork",
			PathPrefix:  "doodle-art/",
			CodePrefix:  "DOODLE",
			ItemCount:   42,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "DOODLE_", Width: 2},
		},
		{
			ID:          "esoteric",
			Name:        "Esoteric",
			Description: "Mystical and esoteric themed artwork",
			PathPrefix:  "esoteric/",
			CodePrefix:  "ESOTERIC",
			ItemCount:   196,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "ESOTERICAS_", Width: 3},
		},
		{
			ID:          "league-of-legends",
			Name:        "League of Legends",
			Description: "League of Legends game-inspired art",
			PathPrefix:  "league-of-legends/",
			CodePrefix:  "LOL",
			ItemCount:   58,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "LOL_", Width: 2},
		},
		{
			ID:          "mortal-kombat",
			Name:        "Mortal Kombat",
			Description: "Fighting game themed digital art",
			PathPrefix:  "mortal-kombat/",
			CodePrefix:  "MORTAL",
			ItemCount:   41,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "MORTAL_", Width: 2},
		},
		{
			ID:          "motivational",
			Name:        "Motivational",
			Description: "Inspirational quotes and motivational artwork",
			PathPrefix:  "motivational/",
			CodePrefix:  "MOTIVATIONAL",
			ItemCount:   115,
			Preview:     30,
			Rule: NumberingRule{
				Kind:       RuleSplitRange,
				Stem:       "FRASES_",
				Width:      0,
				Threshold:  50,
				UpperStem:  "MOTIVATIONAL_",
				UpperWidth: 3,
			},
		},
		{
			ID:          "paintings",
			Name:        "Paintings",
			Description: "Classic and modern painting reproductions",
			PathPrefix:  "paintings/",
			CodePrefix:  "PAINTINGS",
			ItemCount:   50,
			Preview:     1,
			Rule:        NumberingRule{Kind: RuleExplicitList, Titles: paintingTitles()},
		},
		{
			ID:          "religion",
			Name:        "Religion",
			Description: "Religious and spiritual themed artwork",
			PathPrefix:  "religion/",
			CodePrefix:  "RELIGION",
			ItemCount:   103,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "FTH_", Width: 3},
		},
		{
			ID:          "space",
			Name:        "Space",
			Description: "Cosmic and space-themed digital art",
			PathPrefix:  "space/",
			CodePrefix:  "SPACE",
			ItemCount:   60,
			Preview:     1,
			Rule:        NumberingRule{Kind: RulePadded, Stem: "SPACE_", Width: 3},
		},
	}
}

// paintingTitles lists the paintings in catalog order. Filenames are derived
// from these titles (see explicitFilename), so spelling matters.
func paintingTitles() []string {
	return []string{
		"Mona Lisa by Leonardo da Vinci",
		"Lady with an Ermine by Leonardo da Vinci",
		"Girl with a Pearl Earring by Johannes Vermeer",
		"Las Meninas by Diego Velázquez",
		"The Storm on the Sea of Galilee by Rembrandt",
		"The Woman with a Parasol by Claude Oscar Monet",
		"Dante and Virgil in Hell by William-Adolphe Bouguereau",
		"Napoleon Crossing the Alps by Jacques-Louis David",
		"St. George and the Dragon by Raphael Raffaello",
		"The Swing by Jean-Honoré Fragonard",
		"When Will You Marry by Paul Gauguin",
		"View of Toledo by El Greco",
		"Wanderer above the Sea of Fog by Caspar David Friedrich",
		"The Scream by Edvard Munch",
		"The Kiss by Gustav Klimt",
		"The Arnolfini Portrait by Jan van Eyck",
		"American Gothic by Grant Wood",
		"Battle of Issus by Albrecht Altdorfer",
		"Bacchus by Caravaggio",
		"La Virgen de los Lirios by Willian-Adolphe Bouguereau",
		"The Starry Night by Vincent van Gogh",
		"The Gulf Stream by Winslow Homer",
		"The Birth of Venus by Sandro Botticelli",
		"Stag Night at Sharkey's by George Bellows",
		"The Raft of the Medusa by Théodore Géricault",
		"The Triumph of Venus by François Boucher",
		"A Bar at the Folies-Bergère by Édouard Manet",
		"A Cotton Office in New Orleans by Edgar Degas",
		"Bal du moulin de la Galette by Pierre-Auguste Renoir",
		"A Sunday Afternoon on the Island of La Grande Jatte by Georges Seurat",
		"Luncheon of the Boating Party by Pierre-Auguste Renoir",
		"Le Déjeuner sur l'herbe by Édouard Manet",
		"Liberty Leading the People by Eugène Delacroix",
		"The Card Players by Paul Cézanne",
		"Wheat Field with Cypresses at the Haude Galline near Eygalieres by Vincent van Gogh",
		"The Third of May 1808 by Francisco Goya",
		"The Sleeping Gypsy by Henri Rousseau",
		"The Night Watch by Rembrandt",
		"The Lady of Shalott by John William Waterhouse",
		"The Harvesters by Pieter Bruegel the Elder",
		"Boulevard Montmartre, Spring by Camille Pissarro",
		"Impression, Sunrise by Claude Monet",
		"Paris Street in Rainy Weather by Gustave Caillebotte",
		"Saint Jerome Writing by Caravaggio",
		"Breezing Up, also known as A Fair Wind by Winslow Homer",
		"The Last Supper by Leonardo da Vinci",
		"Nighthawks by Edward Hopper",
		"Grande Odalisque by Jean Auguste Dominique Ingres",
		"The Naked Maja by Francisco de Goya y Lucientes",
		"The Creation of Adam by Michelangelo",
	}
}
