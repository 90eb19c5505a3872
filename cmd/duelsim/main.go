// Command duelsim builds two scripted picks, locks them in, and feeds
// a sequence of ability-id intents turn by turn, printing the
// resulting log. It exists to manually exercise the resolver end to
// end during development; it is not part of the in-game error surface
// or the transport boundary.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/match"
	"github.com/duelcore/resolver/model"
)

func main() {
	var (
		seed    = flag.Uint("seed", 1, "32-bit RNG seed")
		turns   = flag.String("turns", "basic_attack,basic_attack", "comma-separated ability ids, one per turn, applied to both players")
		classA  = flag.String("class-a", "warrior", "player A's class id")
		classB  = flag.String("class-b", "mage", "player B's class id")
		content = flag.String("content", "", "path to a content directory to load instead of the embedded fixtures")
	)
	flag.Parse()

	cat, err := loadCatalog(*content)
	if err != nil {
		fmt.Fprintln(os.Stderr, "duelsim:", err)
		os.Exit(1)
	}

	m := match.New(cat, match.Paired{RoomID: "duelsim", SIDA: "playerA", SIDB: "playerB", Seed: uint32(*seed)})

	must(m.PrepSubmit("playerA", model.PlayerBuild{ClassID: *classA}))
	must(m.PrepSubmit("playerB", model.PlayerBuild{ClassID: *classB}))
	must(m.LockIn("playerA"))
	must(m.LockIn("playerB"))

	for _, abilityID := range strings.Split(*turns, ",") {
		abilityID = strings.TrimSpace(abilityID)
		if abilityID == "" {
			continue
		}
		if _, err := m.Action("playerA", model.Intent{AbilityID: abilityID}); err != nil {
			fmt.Fprintln(os.Stderr, "duelsim:", err)
			os.Exit(1)
		}
		if _, err := m.Action("playerB", model.Intent{AbilityID: abilityID}); err != nil {
			fmt.Fprintln(os.Stderr, "duelsim:", err)
			os.Exit(1)
		}
		if m.State.Phase == model.PhaseEnded {
			break
		}
	}

	for _, line := range m.State.Log {
		fmt.Println(line)
	}
}

func loadCatalog(content string) (*catalog.Catalog, error) {
	if content == "" {
		return catalog.Default()
	}
	return catalog.Load(os.DirFS(content))
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "duelsim:", err)
		os.Exit(1)
	}
}
