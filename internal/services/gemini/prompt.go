package gemini

// cardPrompt is the fixed instruction sent with every card photo. The model
// must return exactly one JSON object with the listed keys, empty strings
// for unknowns, and no surrounding prose.
const cardPrompt = `You are assisting with cataloging Magic: The Gathering cards. Analyze the provided card photo and respond with a single JSON object containing these keys: name, language, collectorNumber, setCode, yearOfPrint. The year must be the four digit printing year. If any value is unknown, set it to an empty string. Only return JSON without additional text.`
