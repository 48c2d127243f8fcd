package llm

// SelectWordPrompt accepts category and difficulty and asks the model to
// pick a secret word for a round of twenty questions.
const SelectWordPrompt = `Choose a secret word for a game of Twenty Questions.
Category: %s
Difficulty: %s

SELECTION RULES - YOU MUST FOLLOW THESE EXACTLY:
1. The word MUST be a concrete, commonly known example of the category
2. Difficulty guidance:
   - easy: a word almost everyone knows (e.g., "dog", "pizza", "Paris")
   - medium: a word most adults know (e.g., "platypus", "lighthouse")
   - hard: an uncommon but fair word (e.g., "axolotl", "astrolabe")
3. Pick a DIFFERENT word each time - avoid the most obvious first choice
4. The word must be guessable through yes/no questions about real-world
   properties, never a made-up or ambiguous term
5. Provide exactly 3 hints of increasing specificity:
   - hint 1: broad (general nature or context)
   - hint 2: narrower (distinctive property)
   - hint 3: nearly giving it away

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "word": "the chosen word",
  "category": "%s",
  "difficulty": "%s",
  "hints": ["hint 1", "hint 2", "hint 3"]
}`

// AnswerPrompt accepts the secret word, the question, and the formatted
// history of previous exchanges.
const AnswerPrompt = `You are the secret holder in a game of Twenty Questions.
The secret word is "%s".
The player asked: "%s"

Previous questions and answers:
%s

ANSWER RULES - YOU MUST FOLLOW THESE EXACTLY:
1. If the question can be answered yes or no, reply starting with "Yes" or "No"
2. Keep the whole answer to at most 10 words
3. NEVER write the secret word itself in your answer
4. If the question is not answerable as yes/no, reply with exactly:
   Please ask a yes/no question
5. If the question names the secret word exactly (e.g. "Is it a %s?"),
   reply: "Yes, that's exactly it!"
6. Be truthful; if genuinely ambiguous, lean toward the more common reading

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "answer": "your short answer"
}`

// QuestionPrompt accepts the secret word and the formatted history. The
// model sees the word so its questions stay plausible, but it must reason
// as if it does not know it.
const QuestionPrompt = `You are the guesser in a game of Twenty Questions.
You do NOT know the secret word. (For plausibility checking only, it is "%s" - you must NOT use this knowledge to jump to the answer.)

Questions asked so far and their answers:
%s

QUESTION RULES - YOU MUST FOLLOW THESE EXACTLY:
1. Ask ONE strategic yes/no question that narrows the space of possibilities
2. Build on the answers above; never repeat or contradict them
3. FORBIDDEN: questions about spelling, letters, word length, syllables,
   rhymes, or any other property of the word as text
4. Ask only about real-world, semantic properties (is it alive, is it
   man-made, can you hold it, is it found indoors, ...)
5. Early questions should be broad; later questions more specific
6. If the answers strongly point to one thing, you may ask "Is it a X?"

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "question": "your yes/no question"
}`

// ReadinessPrompt accepts the formatted history and asks whether the
// guesser should skip ahead to a final guess.
const ReadinessPrompt = `You are the guesser in a game of Twenty Questions, reviewing your progress.

Questions asked so far and their answers:
%s

Decide whether the answers above identify ONE specific thing with high
confidence. Only answer ready when you are nearly certain; a wrong final
guess loses the game.

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "ready": true or false,
  "confidence": "low, medium, or high"
}`

// GuessPrompt accepts the formatted history only; the guesser never sees
// the secret word.
const GuessPrompt = `You are the guesser in a game of Twenty Questions making your FINAL guess.

Questions asked and their answers:
%s

GUESS RULES:
1. Respond with the single most likely word or short phrase
2. Be specific (e.g. "elephant", not "a large animal")
3. Base the guess only on the answers above

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "guess": "your single best guess"
}`

// JudgePrompt accepts the secret word and the guess and asks for a
// semantic-equivalence verdict with feedback text.
const JudgePrompt = `Judge a final guess in a game of Twenty Questions.
The secret word is "%s".
The guess is "%s".

JUDGING RULES - YOU MUST FOLLOW THESE EXACTLY:
1. The guess is correct if it names the same thing as the secret word
2. Synonyms and common alternative names count as correct:
   - "couch" matches "sofa"
   - "car" matches "automobile"
   - "NYC" matches "New York City"
3. A broader category is NOT correct ("animal" does not match "dog")
4. A related but different thing is NOT correct ("cat" does not match "dog")
5. Write one or two sentences of feedback for the player: congratulate a
   win, or reveal the word encouragingly on a loss

You must respond ONLY with a valid JSON object, no other text before or after. Do not include any markdown formatting or code blocks.

{
  "correct": true or false,
  "feedback": "your feedback sentence"
}`
