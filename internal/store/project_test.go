package store

import (
	"testing"

	"github.com/google/uuid"

	"memorybook/internal/catalog"
	"memorybook/internal/models"
	"memorybook/internal/pages"
)

func TestProjectLifecycle(t *testing.T) {
	db := testDB(t)
	t.Cleanup(func() { cleanProjects(t, db, "Store Test Project") })

	projects := NewProjectStore(db)
	contributions := NewContributionStore(db)
	pageStore := NewPageStore(db)

	project, err := projects.Create("Store Test Project", "Farewell gift for a colleague")
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}
	if project.ID == uuid.Nil {
		t.Fatal("expected non-nil project id")
	}

	found, err := projects.FindByID(project.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.ProjectName != "Store Test Project" {
		t.Fatalf("unexpected project: %+v", found)
	}

	cover := models.CoverConfig{
		Title:       "Goodbye Ana",
		Description: "We will miss you",
	}
	if err := projects.UpdateCover(project.ID, cover); err != nil {
		t.Fatalf("UpdateCover: %v", err)
	}
	found, err = projects.FindByID(project.ID)
	if err != nil {
		t.Fatalf("FindByID after cover update: %v", err)
	}
	if found.Cover.Title != "Goodbye Ana" {
		t.Fatalf("cover not persisted, got %+v", found.Cover)
	}

	contribution, err := contributions.Create(project.ID, "Marin")
	if err != nil {
		t.Fatalf("Create contribution: %v", err)
	}
	if contribution.Position != 0 {
		t.Fatalf("first contribution position = %d, want 0", contribution.Position)
	}

	second, err := contributions.Create(project.ID, "Iva")
	if err != nil {
		t.Fatalf("Create second contribution: %v", err)
	}
	if second.Position != 1 {
		t.Fatalf("second contribution position = %d, want 1", second.Position)
	}

	// Full load should include both contributions in order.
	full, err := projects.LoadFull(project.ID, contributions, pageStore)
	if err != nil {
		t.Fatalf("LoadFull: %v", err)
	}
	if len(full.Contributions) != 2 {
		t.Fatalf("LoadFull contributions = %d, want 2", len(full.Contributions))
	}
	if full.Contributions[0].ContributorName != "Marin" {
		t.Fatalf("contribution order wrong: %s first", full.Contributions[0].ContributorName)
	}

	if err := projects.Delete(project.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, err = projects.FindByID(project.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if found != nil {
		t.Fatal("project still present after delete")
	}
}

func TestSaveCollectionRoundTrip(t *testing.T) {
	db := testDB(t)
	t.Cleanup(func() { cleanProjects(t, db, "Collection Round Trip") })

	projects := NewProjectStore(db)
	contributions := NewContributionStore(db)
	pageStore := NewPageStore(db)

	project, err := projects.Create("Collection Round Trip", "")
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}
	contribution, err := contributions.Create(project.ID, "Petra")
	if err != nil {
		t.Fatalf("Create contribution: %v", err)
	}

	cat := catalog.New()
	coll := pages.New(contribution.ID, cat.Default())
	coll.Add(cat.Default())
	first := coll.Pages()[0]
	for slot, c := range first.Components {
		if c.Type.IsTextual() {
			if err := coll.SetText(first.ID, slot, "hello from the test"); err != nil {
				t.Fatalf("SetText: %v", err)
			}
			break
		}
	}

	if err := pageStore.SaveCollection(contribution.ID, coll.Pages(), coll.ActiveID()); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}

	stored, err := pageStore.ListByContribution(contribution.ID)
	if err != nil {
		t.Fatalf("ListByContribution: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored pages = %d, want 2", len(stored))
	}
	for i, p := range stored {
		if p.Position != i {
			t.Errorf("page %d position = %d", i, p.Position)
		}
		if len(p.Components) == 0 {
			t.Errorf("page %d lost its components", i)
		}
	}

	active := coll.ActiveID()
	loaded, err := pages.Load(contribution.ID, stored, &active)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ActiveID() != coll.ActiveID() {
		t.Fatalf("active page id lost: %s vs %s", loaded.ActiveID(), coll.ActiveID())
	}

	// Saving a snapshot that dropped a page must remove its row: the
	// delete commits in the same transaction as the surviving pages
	// and the active pointer.
	dropped := loaded.Pages()[1].ID
	if err := loaded.Delete(dropped); err != nil {
		t.Fatalf("Delete page: %v", err)
	}
	if err := pageStore.SaveCollection(contribution.ID, loaded.Pages(), loaded.ActiveID()); err != nil {
		t.Fatalf("SaveCollection after delete: %v", err)
	}
	stored, err = pageStore.ListByContribution(contribution.ID)
	if err != nil {
		t.Fatalf("ListByContribution after delete: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored pages after delete = %d, want 1", len(stored))
	}
	gone, err := pageStore.FindByID(dropped)
	if err != nil {
		t.Fatalf("FindByID dropped page: %v", err)
	}
	if gone != nil {
		t.Fatal("dropped page row survived the snapshot save")
	}

	// An empty snapshot is a caller bug, never a wipe.
	if err := pageStore.SaveCollection(contribution.ID, nil, loaded.ActiveID()); err == nil {
		t.Fatal("SaveCollection accepted an empty snapshot")
	}
}
