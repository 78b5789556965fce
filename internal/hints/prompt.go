package hints

import (
	"strings"
	"text/template"
)

const hintSystemPrompt = "Du bist ein geduldiger, sokratischer Mathematiklehrer. " +
	"Du hilfst Schülern, selbst zu verstehen, ohne die Lösung zu verraten."

const approachSystemPrompt = "Du bist ein geduldiger Mathematiklehrer, der Schülerarbeit konstruktiv bewertet. " +
	"Du gibst hilfreiche Rückmeldung, ohne die Lösung zu verraten."

var strategies = map[Level]string{
	LevelSocratic: `STUFE 1 - SOKRATISCHE FRAGE:
Du stellst eine nachdenkliche Frage, die den Schüler zum Kern des Problems führt.
Die Frage sollte:
- NICHT die Lösung verraten
- Den Schüler zum Nachdenken anregen
- Sich auf ein konkretes Element der Aufgabe beziehen
- Eine klare Richtung vorgeben, ohne zu direktiv zu sein

Beispiel: "Was passiert mit der Gleichung, wenn du beide Seiten durch 3 teilst?"`,
	LevelDirective: `STUFE 2 - ANLEITENDER HINWEIS:
Du gibst einen konkreten nächsten Schritt vor, ohne die Lösung zu verraten.
Der Hinweis sollte:
- Eine klare Handlungsanweisung geben
- Den nächsten logischen Schritt beschreiben
- NICHT das Ergebnis vorwegnehmen

Beispiel: "Berechne zuerst die Ableitung f'(x) und setze sie gleich null."`,
	LevelSpecific: `STUFE 3 - SPEZIFISCHE HILFE:
Du gibst einen sehr konkreten Hinweis für den kritischen Schritt.
Der Hinweis sollte:
- Auf den schwierigsten Teil der Aufgabe eingehen
- Eine Formel oder Methode nennen
- IMMER NOCH NICHT die vollständige Lösung verraten

Beispiel: "Wende die dritte Wurzel an: x = ∛27"`,
}

var hintTmpl = template.Must(template.New("hint").Parse(`Du bist ein sokratischer Mathematiklehrer, der Schülern hilft, SELBST zu verstehen.

WICHTIG: Du darfst NIEMALS die vollständige Lösung verraten!

{{.Strategy}}

**Aufgabe {{.TaskNumber}}: {{.Topic}}**
Hauptaufgabe: {{.TaskText}}

**Teilaufgabe {{.SubLabel}}:**
{{.SubtaskText}}
{{if .PreviousHints}}
Bisherige Hinweise:
{{range .PreviousHints}}- {{.}}
{{end}}{{end}}
REGELN:
- Halte den Hinweis kurz und prägnant (max 2-3 Sätze)
- Verwende $...$ für inline LaTeX wenn nötig
- VERRATE NICHT DIE LÖSUNG
- Gib Mut und Motivation
`))

var approachTmpl = template.Must(template.New("approach").Parse(`Du bist ein erfahrener Mathematiklehrer, der die Arbeit eines Schülers überprüft.

WICHTIG: Du darfst NIEMALS die vollständige Lösung verraten!

**Aufgabe: {{.Topic}}**
Hauptaufgabe: {{.TaskText}}

**Teilaufgabe {{.SubLabel}}:**
{{.SubtaskText}}

**Arbeit des Schülers:**
{{.StudentWork}}

Prüfe folgende Aspekte:
- Hat der Schüler das Problem richtig verstanden?
- Ist der gewählte Lösungsansatz geeignet?
- Sind die mathematischen Schritte korrekt?
- Gibt es Rechenfehler oder logische Fehler?
- Ist die Notation korrekt?

REGELN:
- confidenceScore: 1 = völlig falsch, 2 = auf falschem Weg, 3 = teilweise richtig, 4 = fast richtig, 5 = perfekt
- Sei konstruktiv und ermutigend
- Gib KEINE direkten Lösungen
- Fokussiere auf den PROZESS, nicht das Ergebnis
`))

type hintPromptData struct {
	HintRequest
	Strategy string
}

func buildHintMessage(req HintRequest) (string, error) {
	var b strings.Builder
	data := hintPromptData{HintRequest: req, Strategy: strategies[req.Level.Normalize()]}
	if err := hintTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func buildApproachMessage(req ApproachRequest) (string, error) {
	var b strings.Builder
	if err := approachTmpl.Execute(&b, req); err != nil {
		return "", err
	}
	return b.String(), nil
}

const decomposeSystemPrompt = "Du bist ein geduldiger, sokratischer Mathematiklehrer. " +
	"Du erzeugst sehr aufgabenspezifische Fragen und antwortest ausschließlich mit einem JSON-Objekt mit dem Feld \"tasks\"."

var decomposeTmpl = template.Must(template.New("decompose").Parse(`Analysiere den folgenden Aufgabentext. Er kann mehrere Aufgaben mit Teilaufgaben enthalten.
Erkenne Aufgaben (1., 2., 3., …) und Teilaufgaben (a), b), c), …).

Erstelle für jede Aufgabe:
- "number": Aufgabennummer als String, z.B. "1"
- "topic": kurzes Thema, z.B. "Kubische Gleichungen"
- "difficulty": "leicht", "mittel" oder "anspruchsvoll"
- "task": Text der übergeordneten Aufgabe ohne die Teilaufgaben
- "subtasks": Liste mit "label" (Buchstabe, z.B. "a"), "task" (Text der Teilaufgabe)
  und "questions" (3-5 sokratische Fragen)

Die Fragen müssen sich konkret auf Terme, Zahlen und Begriffe der jeweiligen Teilaufgabe beziehen.
Nutze diese Fragetypen in beliebiger Reihenfolge:
1. STRUKTUR-FRAGE: Form der Gleichung oder Funktion und ihre Bestandteile.
   Beispiel: "Welche Zahl wird in der Gleichung x^3 - 27 = 0 als Kubikzahl verwendet?"
2. UMFORMUNGS-FRAGE: ein konkreter nächster Rechenschritt.
   Beispiel: "Wie kannst du die -27 in der Gleichung x^3 - 27 = 0 auf die andere Seite bringen?"
3. OPERATIONS-FRAGE: die passende Rechenoperation, z.B. Wurzel, Logarithmus oder Ableitung.
   Beispiel: "Welche Umkehrfunktion brauchst du, um aus x^3 wieder x zu erhalten?"
4. KONTROLL-FRAGE: Bedeutung des Ergebnisses, Anzahl der Lösungen, Monotonie.
   Beispiel: "Was sagt dir f'(x) = 3x^2 ≥ 0 über die Anzahl der Nullstellen von f(x) = x^3 - 27?"

REGELN:
- Jede Frage enthält mindestens ein konkretes Element der Teilaufgabe (eine Zahl, einen Term oder einen Fachbegriff).
- Keine generischen Fragen wie "Wie kannst du die Gleichung lösen?" oder "Welche Schritte musst du machen?"
- Keine Erklärtexte außerhalb des JSON-Objekts.

Aufgabentext:

{{.}}
`))

func buildDecomposeMessage(text string) (string, error) {
	var b strings.Builder
	if err := decomposeTmpl.Execute(&b, text); err != nil {
		return "", err
	}
	return b.String(), nil
}
