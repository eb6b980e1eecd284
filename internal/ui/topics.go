package ui

import (
	"fmt"
	"strings"
)

type category struct {
	Name   string
	Topics []string
}

const customTopic = "Custom…"

var catalogue = []category{
	{"Mathematics", []string{"Algebra", "Geometry", "Calculus", "Statistics", "Trigonometry", "Number Theory"}},
	{"Science", []string{"Chemistry", "Physics", "Biology", "Astronomy", "Earth Science", "Environmental Science"}},
	{"Social Studies", []string{"History", "Geography", "Economics", "Civics", "World Cultures", "Political Science"}},
	{"Language Arts", []string{"Grammar", "Vocabulary", "Reading Comprehension", "Writing", "Literature", "Poetry"}},
}

func categoryNames() []string {
	names := make([]string, 0, len(catalogue)+1)
	for _, c := range catalogue {
		names = append(names, c.Name)
	}
	return append(names, customTopic)
}

func topicsOf(name string) []string {
	for _, c := range catalogue {
		if c.Name == name {
			return c.Topics
		}
	}
	return nil
}

// topicPrompt is the problem statement a picked topic starts from.
func topicPrompt(categoryName, topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ""
	}
	if categoryName == customTopic || categoryName == "" {
		return topic
	}
	return fmt.Sprintf("%s (%s): work through a problem on the board.", topic, categoryName)
}
