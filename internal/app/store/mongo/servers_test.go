package mongo

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"geopolitik/internal/app/lobby"
)

func TestTogglePipelineShape(t *testing.T) {
	p := togglePipeline("$injected")
	if len(p) != 1 {
		t.Fatalf("pipeline stages = %d, want 1", len(p))
	}

	raw, err := bson.MarshalExtJSON(bson.D{{Key: "p", Value: p}}, false, false)
	if err != nil {
		t.Fatalf("marshal pipeline: %v", err)
	}

	js := string(raw)
	for _, want := range []string{`"$set"`, `"playersReady"`, `"$cond"`, `"$filter"`, `"$concatArrays"`, `{"$literal":"$injected"}`} {
		if !strings.Contains(js, want) {
			t.Errorf("pipeline %s does not contain %s", js, want)
		}
	}
}

func TestNationDocFlagsBots(t *testing.T) {
	human := toDoc(lobby.Nation{ID: "n1", OwnerID: "u1"})
	bot := toDoc(lobby.Nation{ID: "n2", OwnerID: lobby.BotOwnerID})
	if human.IsBot || !bot.IsBot {
		t.Fatalf("isBot flags = %v/%v, want false/true", human.IsBot, bot.IsBot)
	}

	raw, err := bson.Marshal(bot)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["_id"] != "n2" || m["isBot"] != true || m["ownerId"] != lobby.BotOwnerID {
		t.Fatalf("document fields not inlined: %v", m)
	}
}
