package catalog

// Filter keys of the default character catalog.
const (
	Gender      = "gender"
	Species     = "species"
	Personality = "personality"
	Hobby       = "hobby"
)

// Default returns the character catalog: one binary field followed by three
// enumerated fields. Built once at process start and shared read-only.
func Default() *Catalog {
	return MustNew(
		mustDefinition(Gender, "Gender", BinaryAggregationSize,
			Value{"male", "Male"},
			Value{"female", "Female"},
		),
		mustDefinition(Species, "Species", DefaultAggregationSize,
			Value{"alligator", "Alligator"},
			Value{"anteater", "Anteater"},
			Value{"bear", "Bear"},
			Value{"bird", "Bird"},
			Value{"bull", "Bull"},
			Value{"cat", "Cat"},
			Value{"chicken", "Chicken"},
			Value{"cow", "Cow"},
			Value{"cub", "Cub"},
			Value{"deer", "Deer"},
			Value{"dog", "Dog"},
			Value{"duck", "Duck"},
			Value{"eagle", "Eagle"},
			Value{"elephant", "Elephant"},
			Value{"frog", "Frog"},
			Value{"goat", "Goat"},
			Value{"gorilla", "Gorilla"},
			Value{"hamster", "Hamster"},
			Value{"hippo", "Hippo"},
			Value{"horse", "Horse"},
			Value{"kangaroo", "Kangaroo"},
			Value{"koala", "Koala"},
			Value{"lion", "Lion"},
			Value{"monkey", "Monkey"},
			Value{"mouse", "Mouse"},
			Value{"octopus", "Octopus"},
			Value{"ostrich", "Ostrich"},
			Value{"penguin", "Penguin"},
			Value{"pig", "Pig"},
			Value{"rabbit", "Rabbit"},
			Value{"rhino", "Rhino"},
			Value{"sheep", "Sheep"},
			Value{"squirrel", "Squirrel"},
			Value{"tiger", "Tiger"},
			Value{"wolf", "Wolf"},
		),
		mustDefinition(Personality, "Personality", DefaultAggregationSize,
			Value{"cranky", "Cranky"},
			Value{"jock", "Jock"},
			Value{"lazy", "Lazy"},
			Value{"normal", "Normal"},
			Value{"peppy", "Peppy"},
			Value{"smug", "Smug"},
			Value{"snooty", "Snooty"},
			Value{"uchi", "Big Sister"},
		),
		mustDefinition(Hobby, "Hobby", DefaultAggregationSize,
			Value{"education", "Education"},
			Value{"fashion", "Fashion"},
			Value{"fitness", "Fitness"},
			Value{"music", "Music"},
			Value{"nature", "Nature"},
			Value{"play", "Play"},
		),
	)
}

func mustDefinition(key, displayName string, aggregationSize int, values ...Value) Definition {
	d, err := NewDefinition(key, displayName, aggregationSize, values...)
	if err != nil {
		panic(err)
	}
	return d
}
