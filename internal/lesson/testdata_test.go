package lesson

import "fmt"

func newContent(vocabulary, grammar, expressions, exercises int) Content {
	var c Content
	for i := 0; i < vocabulary; i++ {
		c.Vocabulary = append(c.Vocabulary, Vocabulary{Term: fmt.Sprintf("term %d", i), Definition: "definition"})
	}
	for i := 0; i < grammar; i++ {
		c.Grammar = append(c.Grammar, Grammar{Title: fmt.Sprintf("grammar %d", i), Explanation: "explanation", Examples: []string{"example"}})
	}
	for i := 0; i < expressions; i++ {
		c.Expressions = append(c.Expressions, Expression{Phrase: fmt.Sprintf("phrase %d", i), Meaning: "meaning"})
	}
	for i := 0; i < exercises; i++ {
		c.Exercises = append(c.Exercises, Exercise{
			Type:     ExerciseMultipleChoice,
			Question: fmt.Sprintf("question %d", i),
			Options:  []string{"a", "b"},
			Answer:   "a",
			Points:   1 + i%3,
		})
	}
	return c
}
