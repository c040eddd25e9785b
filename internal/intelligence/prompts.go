package intelligence

// The studio works in Catalan; prompts ask for Catalan output the same
// way the documents themselves are written.

const suggestValuesSystemPrompt = `Ets un assistent per a estudis d'arquitectura.
Donat el nom i la descripció d'un projecte, inventa o dedueix valors coherents
per a les claus de dades que se't demanen.

Respon NOMÉS amb un objecte JSON que mapeja cada clau al seu valor proposat,
sense text addicional. Respon en català si escau.`

const suggestChaptersSystemPrompt = `Ets un assistent per a estudis d'arquitectura.
Proposa una estructura de capítols per a una memòria d'arquitectura basada en
la descripció del projecte.

Respon NOMÉS amb un array JSON d'objectes {"title": "...", "description": "..."},
en l'ordre en què els capítols haurien d'aparèixer. Respon en català.`

const summarySystemPrompt = `Ets un assistent per a estudis d'arquitectura.
Genera un text d'introducció professional per a una memòria d'arquitectura.
El text ha de ser formal, d'estil arquitectònic i estar en català.
Inclou una salutació i un resum de l'objecte del projecte.`
