package config

// defaultStopWords are function words excluded from the frequency tables.
var defaultStopWords = []string{
	"a", "about", "after", "again", "all", "also", "am", "an", "and",
	"another", "any", "are", "as", "at", "be", "because", "behind", "been",
	"being", "but", "by", "came", "can", "can't", "come", "could",
	"couldn't", "could've", "did", "didn't", "do", "does", "doesn't", "doing",
	"don't", "else", "even", "few", "for", "from", "get", "getting", "gets",
	"go", "goes", "going", "gonna", "good", "got", "had", "hadn't", "has",
	"hasn't", "have", "haven't", "having", "he", "he'd", "he'll", "he's",
	"her", "here", "hers", "him", "his", "how", "i", "i'd", "i'll", "if",
	"i'm", "in", "inside", "is", "isn't", "it", "it'd", "it'll", "it's", "its",
	"i've", "just", "know", "let's", "like", "me", "my", "naw", "no", "not",
	"now", "oh", "of", "off", "ok", "okay", "on", "one", "or", "our", "out",
	"outside", "really", "right", "she", "she'd", "she'll", "she's", "should",
	"that", "that'd", "that'll", "that's", "the", "their", "them", "then",
	"there", "they", "these", "those", "think", "this", "this'd", "this'll",
	"they're", "so", "some", "though", "to", "up", "us", "very", "was", "we",
	"well", "went", "we're", "were", "we've", "what", "what's", "what'd",
	"what'll", "when", "which", "while", "who", "why", "will", "with",
	"without", "would", "wouldn't", "would've", "yeah", "yes", "you", "you'd",
	"you'll", "your", "you're", "you've",
}
